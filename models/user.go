package models

import "time"

// Account types mirror the values stored by the mobile client.
const (
	UserTypePatient      = "paciente"
	UserTypeProfessional = "profissional"
)

// User represents a platform account, either a patient or a mental-health
// professional. Professionals additionally carry a CRP registration number.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	UserType     string    `bson:"userType" json:"userType"`
	CRP          string    `bson:"crp,omitempty" json:"crp,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	// PrivacyConsent records whether the user accepted the privacy policy.
	PrivacyConsent bool       `bson:"privacyConsent" json:"privacyConsent"`
	ConsentAt      *time.Time `bson:"consentAt,omitempty" json:"consentAt,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// Professional is the public projection of a professional account shown to
// patients when browsing for someone to book.
type Professional struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	CRP      string `bson:"crp,omitempty" json:"crp,omitempty"`
	UserType string `bson:"userType" json:"userType"`
}
