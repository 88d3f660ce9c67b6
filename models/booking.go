package models

import "time"

// Booking status values as stored by the client.
const (
	BookingStatusPending   = "pendente"
	BookingStatusConfirmed = "confirmado"
)

// Booking represents a reservation of one availability slot by one patient.
// ID is derived deterministically from (professionalId, day, time) so a unique
// index on it makes the insert a conditional write: two concurrent attempts on
// the same slot cannot both succeed.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	PatientID      string    `bson:"patientId" json:"patientId"`
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	Day            string    `bson:"day" json:"day"`
	Time           string    `bson:"time" json:"time"`
	PatientName    string    `bson:"patientName" json:"patientName"`
	PatientEmail   string    `bson:"patientEmail" json:"patientEmail"`
	PatientPhone   string    `bson:"patientPhone" json:"patientPhone"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// PatientInfo carries the contact details captured with a booking request.
type PatientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
