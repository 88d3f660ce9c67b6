package models

// Weekday labels used as keys of an availability schedule. These are the
// labels the client renders and stores, in display order.
var WeekDays = []string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sab", "Dom"}

// IsValidDay reports whether day is one of the known weekday labels.
func IsValidDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// Availability is one professional's weekly slot map. Schedule maps a weekday
// label to the ordered set of bookable time labels (e.g. "08:00") for that day.
type Availability struct {
	ProfessionalID string              `bson:"professionalId" json:"professionalId"`
	Name           string              `bson:"name" json:"name"`
	Email          string              `bson:"email" json:"email"`
	UserType       string              `bson:"userType" json:"userType"`
	Schedule       map[string][]string `bson:"schedule" json:"schedule"`
}
