package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"safelife/config"
	"safelife/models"
)

const TypeBookingReminder = "booking:reminder"

// Reminders are delivered a fixed delay after booking; slot labels carry a
// weekday but no calendar date, so there is nothing to schedule against.
const reminderDelay = time.Hour

// ReminderService enqueues appointment reminder tasks onto the redis-backed
// queue consumed by the cron worker.
type ReminderService struct {
	client *asynq.Client
}

// NewReminderService builds a ReminderService over the configured redis queue.
func NewReminderService() *ReminderService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderService{client: client}
}

// EnqueueBookingReminder schedules a reminder for a freshly created booking.
func (s *ReminderService) EnqueueBookingReminder(booking *models.Booking) error {
	payload := models.ReminderPayload{
		BookingID:      booking.ID,
		PatientID:      booking.PatientID,
		ProfessionalID: booking.ProfessionalID,
		Day:            booking.Day,
		Time:           booking.Time,
		Title:          "Lembrete de consulta",
		Body:           fmt.Sprintf("Sua consulta está marcada para %s às %s.", booking.Day, booking.Time),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingReminder, data)
	if _, err := s.client.Enqueue(task, asynq.ProcessIn(reminderDelay)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
