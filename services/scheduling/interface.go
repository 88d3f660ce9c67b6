package scheduling

import (
	"context"

	availabilityRepo "safelife/database/repository/availability"
	bookingRepo "safelife/database/repository/booking"
	userRepo "safelife/database/repository/user"
	"safelife/models"
)

// BookingRequest carries everything needed to reserve one slot.
type BookingRequest struct {
	ProfessionalID string             `json:"professionalId"`
	PatientID      string             `json:"patientId"`
	Day            string             `json:"day"`
	Time           string             `json:"time"`
	Patient        models.PatientInfo `json:"patient"`
}

// SchedulingService owns the availability map, the booking invariant and the
// slot-removal conflict guard.
type SchedulingService interface {
	// Availability store (professional side).
	EnsureAvailability(ctx context.Context, prof models.Professional) error
	SetDaySlots(ctx context.Context, professionalID, day string, slots []string) error
	GetDaySlots(ctx context.Context, professionalID, day string) ([]string, error)
	GetSchedule(ctx context.Context, professionalID string) (map[string][]string, error)

	// Slot editor guard and multi-day save.
	CanRemove(ctx context.Context, professionalID, day, slot string) (bool, error)
	SaveAll(ctx context.Context, professionalID string, pendingByDay map[string][]string) error

	// Slot browser (patient side).
	ListProfessionalsWithAgenda(ctx context.Context) ([]models.Professional, error)
	ListProfessionalsByRole(ctx context.Context) []models.Professional

	// Booking service.
	BookAppointment(ctx context.Context, req BookingRequest) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string) error
	ListForProfessional(ctx context.Context, professionalID string) ([]models.Booking, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Booking, error)
}

// ReminderEnqueuer schedules an appointment reminder for a freshly created
// booking. Implemented by the asynq-backed tasks service; nil disables it.
type ReminderEnqueuer interface {
	EnqueueBookingReminder(booking *models.Booking) error
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	AvailabilityRepo availabilityRepo.AvailabilityRepository
	BookingRepo      bookingRepo.BookingRepository
	UserRepo         userRepo.UserRepository
	Reminders        ReminderEnqueuer
}
