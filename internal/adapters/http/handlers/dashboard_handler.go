package handlers

import (
	"trash2trade/internal/core/domain"
	"trash2trade/internal/core/services"
	"trash2trade/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns dashboard data for the caller's role
// @Summary Get dashboard
// @Description Get role-specific dashboard data
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	switch domain.Role(role) {
	case domain.RoleCitizen:
		data, err := h.dashboardService.GetCitizenDashboard(c.Context(), userID)
		if err != nil {
			return response.InternalServerError(c, "Failed to load dashboard")
		}
		return response.Success(c, "Dashboard retrieved successfully", data)

	case domain.RoleCollector:
		data, err := h.dashboardService.GetCollectorDashboard(c.Context(), userID)
		if err != nil {
			return response.InternalServerError(c, "Failed to load dashboard")
		}
		return response.Success(c, "Dashboard retrieved successfully", data)

	case domain.RoleNGO:
		data, err := h.dashboardService.GetNGODashboard(c.Context())
		if err != nil {
			return response.InternalServerError(c, "Failed to load dashboard")
		}
		return response.Success(c, "Dashboard retrieved successfully", data)
	}

	return response.Forbidden(c, "Unknown role")
}
