package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"karaokehub/internal/domain"
	"karaokehub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.POST("/rooms", h.CreateRoom)
	rg.PATCH("/rooms/:id", h.UpdateRoom)
	rg.GET("/business-hours", h.GetBusinessHours)
	rg.PUT("/business-hours", h.UpdateBusinessHours)
}

func (h *Handler) ListRooms(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	// Only staff and admins see deactivated rooms.
	includeInactive := c.Query("include_inactive") == "true" &&
		c.GetString("role") != string(domain.RoleUser)

	rooms, err := h.service.ListRooms(c.Request.Context(), tenantID, includeInactive)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list rooms")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) GetRoom(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), tenantID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	tenantID, ok := adminOnly(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), tenantID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	tenantID, ok := adminOnly(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) GetBusinessHours(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	hours, err := h.service.GetBusinessHours(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load business hours")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"business_hours": hours})
}

func (h *Handler) UpdateBusinessHours(c *gin.Context) {
	tenantID, ok := adminOnly(c)
	if !ok {
		return
	}

	var req UpdateBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	hours, err := h.service.UpdateBusinessHours(c.Request.Context(), tenantID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"business_hours": hours})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field value")
	case errors.Is(err, ErrRoomLimitExceeded):
		response.Error(c, http.StatusUnprocessableEntity, "PLAN_LIMIT", "Room limit for the current plan reached")
	case errors.Is(err, ErrInvalidHours):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid business hours schedule")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func tenantFromContext(c *gin.Context) (int64, bool) {
	tenantID := c.GetInt64("tenant_id")
	if tenantID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Tenant-scoped token required")
		return 0, false
	}
	return tenantID, true
}

func adminOnly(c *gin.Context) (int64, bool) {
	if c.GetString("role") != string(domain.RoleAdmin) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin role required")
		return 0, false
	}
	return tenantFromContext(c)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
