package scheduling

import (
	"context"
	"fmt"

	"safelife/models"
)

// EditSession holds a professional's unsaved slot edits, one pending set per
// day. Nothing is persisted until SaveAll.
type EditSession struct {
	pending map[string][]string
}

// NewEditSession seeds a session from the currently stored schedule.
func NewEditSession(current map[string][]string) *EditSession {
	pending := make(map[string][]string, len(current))
	for day, slots := range current {
		pending[day] = append([]string(nil), slots...)
	}
	return &EditSession{pending: pending}
}

// ToggleSlot flips the slot's membership in the pending set for that day,
// keeping display order for additions.
func (e *EditSession) ToggleSlot(day, slot string) {
	slots := e.pending[day]
	for i, s := range slots {
		if s == slot {
			e.pending[day] = append(slots[:i], slots[i+1:]...)
			return
		}
	}
	e.pending[day] = append(slots, slot)
}

// PendingByDay returns the current pending sets.
func (e *EditSession) PendingByDay() map[string][]string {
	return e.pending
}

// CanRemove reports whether the slot may be removed from the professional's
// availability. It is false when a booking is attached to that exact
// (day, time). An I/O failure is returned as an error so the caller can tell
// "no conflict" apart from "couldn't check".
func (s *DefaultSchedulingService) CanRemove(ctx context.Context, professionalID, day, slot string) (bool, error) {
	booked, err := s.BookingRepo.ExistsForSlot(ctx, professionalID, day, slot)
	if err != nil {
		return false, fmt.Errorf("failed to check bookings for %s/%s: %w", day, slot, err)
	}
	return !booked, nil
}

// SaveAll persists every modified day. All removals are guard-checked up
// front; a guarded slot rejects the whole save before anything is written.
// The per-day writes themselves are not atomic: a failure mid-save leaves the
// already-written days updated and the rest stale, and the error says so.
func (s *DefaultSchedulingService) SaveAll(ctx context.Context, professionalID string, pendingByDay map[string][]string) error {
	if professionalID == "" {
		return NewValidationError("professional id is required")
	}

	current, err := s.AvailabilityRepo.GetSchedule(ctx, professionalID)
	if err != nil {
		return fmt.Errorf("failed to load current schedule: %w", err)
	}

	for day, pending := range pendingByDay {
		if !models.IsValidDay(day) {
			return NewValidationError("unknown day label: " + day)
		}
		for _, removed := range removedSlots(current[day], pending) {
			ok, err := s.CanRemove(ctx, professionalID, day, removed)
			if err != nil {
				return err
			}
			if !ok {
				return NewSlotGuardedError(day, removed)
			}
		}
	}

	saved := 0
	for day, pending := range pendingByDay {
		if err := s.AvailabilityRepo.SetDaySlots(ctx, professionalID, day, dedupeSlots(pending)); err != nil {
			return fmt.Errorf("schedule partially saved (%d of %d days): %w", saved, len(pendingByDay), err)
		}
		saved++
	}
	return nil
}

func removedSlots(current, pending []string) []string {
	keep := make(map[string]struct{}, len(pending))
	for _, s := range pending {
		keep[s] = struct{}{}
	}
	var removed []string
	for _, s := range current {
		if _, ok := keep[s]; !ok {
			removed = append(removed, s)
		}
	}
	return removed
}
