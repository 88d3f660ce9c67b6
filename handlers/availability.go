package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safelife/services/scheduling"
	"safelife/utils"
)

// AvailabilityHandler exposes the professional's weekly slot map and the
// slot-editor save path.
type AvailabilityHandler struct {
	Scheduling scheduling.SchedulingService
}

func NewAvailabilityHandler(svc scheduling.SchedulingService) *AvailabilityHandler {
	return &AvailabilityHandler{Scheduling: svc}
}

// ListProfessionalsHandler handles GET /api/professionals. With
// ?withAgenda=true only professionals holding an availability document are
// returned; otherwise all professional accounts.
func (h *AvailabilityHandler) ListProfessionalsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("withAgenda") == "true" {
		pros, err := h.Scheduling.ListProfessionalsWithAgenda(ctx)
		if err != nil {
			utils.GetLogger().Error("failed to list professionals with agenda", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"professionals": pros})
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": h.Scheduling.ListProfessionalsByRole(ctx)})
}

// GetScheduleHandler handles GET /api/availability/:professionalId.
func (h *AvailabilityHandler) GetScheduleHandler(c *gin.Context) {
	schedule, err := h.Scheduling.GetSchedule(c.Request.Context(), c.Param("professionalId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// SetDaySlotsHandler handles PUT /api/availability/:professionalId/day/:day.
func (h *AvailabilityHandler) SetDaySlotsHandler(c *gin.Context) {
	var req struct {
		Slots []string `json:"slots"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	err := h.Scheduling.SetDaySlots(c.Request.Context(), c.Param("professionalId"), c.Param("day"), req.Slots)
	if err != nil {
		status := http.StatusInternalServerError
		if scheduling.IsCode(err, scheduling.CodeValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slots saved"})
}

// SaveAllHandler handles POST /api/availability/:professionalId/save. The
// payload is the editor's full pending map; guarded removals reject the save.
func (h *AvailabilityHandler) SaveAllHandler(c *gin.Context) {
	var req struct {
		PendingByDay map[string][]string `json:"pendingByDay" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	err := h.Scheduling.SaveAll(c.Request.Context(), c.Param("professionalId"), req.PendingByDay)
	if err != nil {
		switch {
		case scheduling.IsCode(err, scheduling.CodeValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case scheduling.IsCode(err, scheduling.CodeSlotGuarded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule saved"})
}

// CanRemoveHandler handles GET /api/availability/:professionalId/can-remove.
func (h *AvailabilityHandler) CanRemoveHandler(c *gin.Context) {
	day := c.Query("day")
	slot := c.Query("slot")
	if day == "" || slot == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day and slot are required"})
		return
	}

	ok, err := h.Scheduling.CanRemove(c.Request.Context(), c.Param("professionalId"), day, slot)
	if err != nil {
		// "Couldn't check" must not read as "no conflict".
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"canRemove": ok})
}
