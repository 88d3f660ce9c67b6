package scheduling

import (
	"context"

	"go.uber.org/zap"

	"safelife/models"
	"safelife/utils"
)

func (s *DefaultSchedulingService) EnsureAvailability(ctx context.Context, prof models.Professional) error {
	return s.AvailabilityRepo.EnsureForProfessional(ctx, prof)
}

// SetDaySlots overwrites one day's slot set. Duplicate labels collapse to one
// entry, first occurrence wins, so the stored list keeps display order.
func (s *DefaultSchedulingService) SetDaySlots(ctx context.Context, professionalID, day string, slots []string) error {
	if professionalID == "" {
		return NewValidationError("professional id is required")
	}
	if !models.IsValidDay(day) {
		return NewValidationError("unknown day label: " + day)
	}
	return s.AvailabilityRepo.SetDaySlots(ctx, professionalID, day, dedupeSlots(slots))
}

func (s *DefaultSchedulingService) GetDaySlots(ctx context.Context, professionalID, day string) ([]string, error) {
	return s.AvailabilityRepo.GetDaySlots(ctx, professionalID, day)
}

func (s *DefaultSchedulingService) GetSchedule(ctx context.Context, professionalID string) (map[string][]string, error) {
	return s.AvailabilityRepo.GetSchedule(ctx, professionalID)
}

// ListProfessionalsWithAgenda returns professionals that have availability
// documents, the set the booking screen offers.
func (s *DefaultSchedulingService) ListProfessionalsWithAgenda(ctx context.Context) ([]models.Professional, error) {
	return s.AvailabilityRepo.ListProfessionals(ctx)
}

// ListProfessionalsByRole returns all professional accounts. Failures are
// logged and collapse to an empty list; the listing screen shows "no results"
// either way.
func (s *DefaultSchedulingService) ListProfessionalsByRole(ctx context.Context) []models.Professional {
	pros, err := s.UserRepo.ListProfessionals(ctx)
	if err != nil {
		utils.GetLogger().Error("failed to list professionals", zap.Error(err))
		return []models.Professional{}
	}
	if pros == nil {
		return []models.Professional{}
	}
	return pros
}

func dedupeSlots(slots []string) []string {
	seen := make(map[string]struct{}, len(slots))
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot == "" {
			continue
		}
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		out = append(out, slot)
	}
	return out
}
