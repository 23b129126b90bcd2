package handlers

import (
	"net/http"
	"strings"
	"time"

	bookingRepo "mentorhub/database/repository/booking"
	"mentorhub/middleware"
	"mentorhub/models"
	"mentorhub/services/scheduling"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling engine over HTTP.
type BookingHandler struct {
	Engine scheduling.SchedulingEngine
	Logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(engine scheduling.SchedulingEngine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "no authenticated actor")
		return
	}

	var input scheduling.ProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Engine.ProposeBooking(c.Request.Context(), actor, input)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ConfirmBooking handles POST /api/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		MeetingLink string `json:"meeting_link"`
	}
	// Body is optional; a confirm without a link is valid.
	_ = c.ShouldBindJSON(&input)
	h.transition(c, scheduling.TransitionInput{
		Target:      models.StatusConfirmed,
		MeetingLink: input.MeetingLink,
	})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, scheduling.TransitionInput{Target: models.StatusCancelled})
}

// CompleteBooking handles POST /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, scheduling.TransitionInput{Target: models.StatusCompleted})
}

func (h *BookingHandler) transition(c *gin.Context, input scheduling.TransitionInput) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "no authenticated actor")
		return
	}
	bookingID := c.Param("id")

	booking, err := h.Engine.Transition(c.Request.Context(), actor, bookingID, input)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Engine.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMentorBookings handles GET /api/mentors/:id/bookings.
func (h *BookingHandler) ListMentorBookings(c *gin.Context) {
	filter := bookingRepo.ListFilter{}
	if statuses := c.Query("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			status := models.BookingStatus(strings.TrimSpace(s))
			if !models.ValidStatus(status) {
				utils.JSONError(c, http.StatusBadRequest, "invalid input", "unknown status "+string(status))
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if from, ok := parseTimeQuery(c, "from"); ok {
		filter.From = &from
	}
	if to, ok := parseTimeQuery(c, "to"); ok {
		filter.To = &to
	}

	bookings, err := h.Engine.ListMentorBookings(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetAvailability handles GET /api/mentors/:id/availability.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	now := time.Now().UTC()
	from, to := now, now.AddDate(0, 0, 7)
	if v, ok := parseTimeQuery(c, "from"); ok {
		from = v
	}
	if v, ok := parseTimeQuery(c, "to"); ok {
		to = v
	}

	windows, err := h.Engine.FreeSlots(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": windows})
}

// GetBookingStats handles GET /api/bookings/stats for the dashboard.
func (h *BookingHandler) GetBookingStats(c *gin.Context) {
	counts, err := h.Engine.CountByStatus(c.Request.Context())
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	stats := gin.H{}
	var total int64
	for status, n := range counts {
		stats[string(status)] = n
		total += n
	}
	stats["total"] = total
	c.JSON(http.StatusOK, stats)
}

func parseTimeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// respondEngineError maps the engine's error taxonomy to HTTP statuses.
func (h *BookingHandler) respondEngineError(c *gin.Context, err error) {
	switch {
	case scheduling.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case scheduling.IsAuthorization(err):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	case scheduling.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case scheduling.IsConflict(err):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())
	default:
		h.Logger.Error("booking operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "operation failed, please retry")
	}
}
