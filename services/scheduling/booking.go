package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "safelife/database/repository/booking"
	"safelife/models"
	"safelife/utils"
)

// Namespace for deriving booking IDs from their slot coordinates.
var bookingNamespace = uuid.MustParse("8f3c1d2a-5b6e-4f70-9a1c-2d3e4f5a6b7c")

// BookingIDFor derives the deterministic booking ID for a slot. Two concurrent
// attempts on the same (professionalId, day, time) derive the same ID, so the
// unique index lets exactly one insert through.
func BookingIDFor(professionalID, day, slot string) string {
	key := professionalID + "|" + day + "|" + slot
	return uuid.NewSHA1(bookingNamespace, []byte(key)).String()
}

// BookAppointment validates the request, rejects repeats by the same patient,
// and reserves the slot with a conditional insert. No retry on I/O failure;
// the user retries manually and the operation is idempotent from their side.
func (s *DefaultSchedulingService) BookAppointment(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.BookingRepo.ExistsForPatient(ctx, req.ProfessionalID, req.PatientID, req.Day, req.Time)
	if err != nil {
		utils.GetLogger().Error("booking existence check failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify existing bookings: %w", err)
	}
	if exists {
		return nil, NewDuplicateBookingError()
	}

	booking := &models.Booking{
		ID:             BookingIDFor(req.ProfessionalID, req.Day, req.Time),
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		Day:            req.Day,
		Time:           req.Time,
		PatientName:    req.Patient.Name,
		PatientEmail:   req.Patient.Email,
		PatientPhone:   req.Patient.Phone,
		Status:         models.BookingStatusConfirmed,
	}
	if err := s.BookingRepo.Insert(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, NewSlotTakenError(req.Day, req.Time)
		}
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.EnqueueBookingReminder(booking); err != nil {
			// A missed reminder must not undo a confirmed booking.
			utils.GetLogger().Warn("failed to enqueue booking reminder",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

func (s *DefaultSchedulingService) ConfirmBooking(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return NewValidationError("booking id is required")
	}
	return s.BookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusConfirmed)
}

func (s *DefaultSchedulingService) ListForProfessional(ctx context.Context, professionalID string) ([]models.Booking, error) {
	return s.BookingRepo.ListByProfessional(ctx, professionalID)
}

func (s *DefaultSchedulingService) ListForPatient(ctx context.Context, patientID string) ([]models.Booking, error) {
	return s.BookingRepo.ListByPatient(ctx, patientID)
}

func validateBookingRequest(req BookingRequest) error {
	switch {
	case req.ProfessionalID == "":
		return NewValidationError("professional id is required")
	case req.PatientID == "":
		return NewValidationError("patient id is required")
	case !models.IsValidDay(req.Day):
		return NewValidationError("unknown day label: " + req.Day)
	case req.Time == "":
		return NewValidationError("time slot is required")
	case req.Patient.Name == "":
		return NewValidationError("patient name is required")
	case req.Patient.Email == "":
		return NewValidationError("patient email is required")
	case req.Patient.Phone == "":
		return NewValidationError("patient phone is required")
	}
	return nil
}
