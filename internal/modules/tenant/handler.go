package tenant

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/tenants", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/tenant", h.GetProfile)
	rg.PATCH("/tenant", h.UpdateProfile)
	rg.POST("/tenants/:id/deactivate", h.Deactivate)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, admin, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"tenant": t,
		"admin":  admin,
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	tenantID := c.GetInt64("tenant_id")
	if tenantID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Tenant-scoped token required")
		return
	}

	t, err := h.service.GetProfile(c.Request.Context(), tenantID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tenant": t})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	if c.GetString("role") != string(domain.RoleAdmin) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin role required")
		return
	}
	tenantID := c.GetInt64("tenant_id")
	if tenantID == 0 {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Tenant-scoped token required")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateProfile(c.Request.Context(), tenantID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tenant": t})
}

// Deactivate is restricted to the tenant-less super_admin role.
func (h *Handler) Deactivate(c *gin.Context) {
	if c.GetString("role") != string(domain.RoleSuperAdmin) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Super admin role required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tenant id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tenant not found")
	case errors.Is(err, ErrSlugTaken):
		response.Error(c, http.StatusConflict, "SLUG_TAKEN", "Slug already registered")
	case errors.Is(err, ErrInvalidSlug):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Slug must be lowercase letters, digits and dashes")
	case errors.Is(err, ErrWeakPassword):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 8 characters")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field value")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
