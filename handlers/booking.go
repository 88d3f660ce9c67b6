package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safelife/services/scheduling"
	"safelife/utils"
)

// BookingHandler exposes the appointment endpoints.
type BookingHandler struct {
	Scheduling scheduling.SchedulingService
}

func NewBookingHandler(svc scheduling.SchedulingService) *BookingHandler {
	return &BookingHandler{Scheduling: svc}
}

// CreateBookingHandler handles POST /api/bookings. The patient identity comes
// from the authenticated session, never the payload.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.PatientID = c.GetString("userID")

	booking, err := h.Scheduling.BookAppointment(c.Request.Context(), req)
	if err != nil {
		switch {
		case scheduling.IsCode(err, scheduling.CodeValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case scheduling.IsCode(err, scheduling.CodeDuplicateBooking),
			scheduling.IsCode(err, scheduling.CodeSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Booking failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// ConfirmBookingHandler handles PATCH /api/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	if err := h.Scheduling.ConfirmBooking(c.Request.Context(), c.Param("id")); err != nil {
		if scheduling.IsCode(err, scheduling.CodeValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking confirmed"})
}

// ListForProfessionalHandler handles GET /api/bookings/professional/:id.
func (h *BookingHandler) ListForProfessionalHandler(c *gin.Context) {
	bookings, err := h.Scheduling.ListForProfessional(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListForPatientHandler handles GET /api/bookings/patient/:id.
func (h *BookingHandler) ListForPatientHandler(c *gin.Context) {
	bookings, err := h.Scheduling.ListForPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
