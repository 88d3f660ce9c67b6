package scheduling

import (
	"errors"
	"fmt"
)

// BookingError is a typed, user-visible scheduling failure.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	// CodeValidation marks client-side input problems caught before any I/O.
	CodeValidation = "validationError"
	// CodeDuplicateBooking marks a repeat booking by the same patient for the
	// same (professional, day, time).
	CodeDuplicateBooking = "duplicateBooking"
	// CodeSlotTaken marks a slot already held by another booking.
	CodeSlotTaken = "slotTaken"
	// CodeSlotGuarded marks a slot removal blocked by an attached booking.
	CodeSlotGuarded = "slotGuarded"
)

func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func NewDuplicateBookingError() error {
	return &BookingError{Code: CodeDuplicateBooking, Message: "você já possui um agendamento nesse horário"}
}

func NewSlotTakenError(day, slot string) error {
	return &BookingError{Code: CodeSlotTaken, Message: fmt.Sprintf("o horário %s de %s já está ocupado", slot, day)}
}

func NewSlotGuardedError(day, slot string) error {
	return &BookingError{Code: CodeSlotGuarded, Message: fmt.Sprintf("o horário %s de %s possui um agendamento confirmado", slot, day)}
}

// IsCode reports whether err is a BookingError carrying the given code.
func IsCode(err error, code string) bool {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
