package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"karaokehub/internal/domain"
	"karaokehub/internal/pkg/response"
	"karaokehub/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/:id", h.Get)
	rg.PATCH("/bookings/:id", h.Update)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.POST("/bookings/:id/complete", h.Complete)
	rg.POST("/bookings/:id/no-show", h.NoShow)
	rg.GET("/rooms/:id/availability", h.Availability)
}

func (h *Handler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), tenantID, c.GetString("role"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	f, err := parseFilter(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), tenantID, f)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) Get(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), tenantID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var patch UpdateBookingRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), tenantID, c.GetString("role"), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req) // reason is optional

	b, err := h.service.CancelBooking(c.Request.Context(), tenantID, id, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Complete(c *gin.Context) {
	h.staffTransition(c, h.service.CompleteBooking)
}

func (h *Handler) NoShow(c *gin.Context) {
	h.staffTransition(c, h.service.MarkNoShow)
}

func (h *Handler) staffTransition(c *gin.Context, fn func(ctx context.Context, tenantID, bookingID int64) (*domain.Booking, error)) {
	if c.GetString("role") == string(domain.RoleUser) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Staff role required")
		return
	}

	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), tenantID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Availability(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	roomID, ok := idParam(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing date query parameter (YYYY-MM-DD)")
		return
	}

	avail, err := h.service.RoomAvailability(c.Request.Context(), tenantID, roomID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"availability": avail})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var conflict *ConflictError

	switch {
	case errors.Is(err, ErrInvalidInterval):
		response.Error(c, http.StatusBadRequest, "INVALID_INTERVAL", "Start time must be before end time")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
			"Room is already booked for the selected time", gin.H{
				"conflicting_start": conflict.Start,
				"conflicting_end":   conflict.End,
			})
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is already booked for the selected time")
	case errors.Is(err, ErrOutOfHours):
		response.Error(c, http.StatusUnprocessableEntity, "OUT_OF_HOURS", "Interval is outside business hours")
	case errors.Is(err, ErrStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Booking status does not allow this operation")
	case errors.Is(err, ErrPlanLimitExceeded):
		response.Error(c, http.StatusUnprocessableEntity, "PLAN_LIMIT", "Monthly booking limit reached")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

// tenantFromContext reads the tenant scope the auth middleware derived from
// the verified token. Requests without one (super_admin tokens included)
// cannot touch tenant-scoped booking data.
func tenantFromContext(c *gin.Context) (int64, bool) {
	tenantID := c.GetInt64("tenant_id")
	if tenantID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Tenant-scoped token required")
		return 0, false
	}
	return tenantID, true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func parseFilter(c *gin.Context) (repository.BookingFilter, error) {
	var f repository.BookingFilter

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid from: expected RFC3339 timestamp")
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("invalid to: expected RFC3339 timestamp")
		}
		f.To = &t
	}
	if v := c.Query("room_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("invalid room_id")
		}
		f.RoomID = &id
	}
	if v := c.Query("status"); v != "" {
		st := domain.BookingStatus(v)
		switch st {
		case domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted, domain.BookingNoShow:
			f.Status = &st
		default:
			return f, errors.New("invalid status")
		}
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid limit")
		}
		f.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid offset")
		}
		f.Offset = n
	}

	return f, nil
}
