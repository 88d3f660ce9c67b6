package models

// ReminderPayload is the queued task payload for an appointment reminder.
type ReminderPayload struct {
	BookingID      string `json:"bookingId"`
	PatientID      string `json:"patientId"`
	ProfessionalID string `json:"professionalId"`
	Day            string `json:"day"`
	Time           string `json:"time"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}
