package handlers

import (
	"errors"
	"strconv"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/core/domain"
	"trash2trade/internal/core/services"
	"trash2trade/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PickupHandler handles pickup endpoints
type PickupHandler struct {
	pickupService *services.PickupService
}

// NewPickupHandler creates a new pickup handler
func NewPickupHandler(pickupService *services.PickupService) *PickupHandler {
	return &PickupHandler{pickupService: pickupService}
}

// Create handles pickup creation
// @Summary Create pickup request
// @Description Create a new waste pickup request
// @Tags Pickups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePickupInput true "Pickup data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pickups [post]
func (h *PickupHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreatePickupInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	pickup, err := h.pickupService.Create(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidWasteType):
			return response.BadRequest(c, "Waste type must be plastic, e-waste, paper or metal")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Quantity, address, preferred date and time are required")
		default:
			return response.InternalServerError(c, "Failed to create pickup")
		}
	}

	return response.Created(c, "Pickup created successfully", pickup.ToResponse())
}

// GetByID handles fetching a single pickup
// @Summary Get pickup
// @Description Get a pickup request by ID
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pickup ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pickups/{id} [get]
func (h *PickupHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	pickupID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pickup ID")
	}

	pickup, err := h.pickupService.GetForActor(c.Context(), pickupID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPickupNotFound):
			return response.NotFound(c, "Pickup not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to view this pickup")
		default:
			return response.InternalServerError(c, "Failed to get pickup")
		}
	}

	return response.Success(c, "Pickup retrieved successfully", pickup.ToResponse())
}

// ListMine handles listing the caller's pickup requests
// @Summary List my pickups
// @Description List pickups requested by the current user
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /pickups/my [get]
func (h *PickupHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pickups, err := h.pickupService.ListMine(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pickups")
	}

	return response.Success(c, "Pickups retrieved successfully", toPickupResponses(pickups))
}

// ListForCollector handles listing pickups assigned to the caller
// @Summary List assigned pickups
// @Description List pickups assigned to the current collector
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /pickups/collector [get]
func (h *PickupHandler) ListForCollector(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	pickups, err := h.pickupService.ListForCollector(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pickups")
	}

	return response.Success(c, "Pickups retrieved successfully", toPickupResponses(pickups))
}

// ListAvailable handles listing unclaimed pickups
// @Summary List available pickups
// @Description List pending pickups available for claiming
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /pickups/available [get]
func (h *PickupHandler) ListAvailable(c *fiber.Ctx) error {
	pickups, err := h.pickupService.ListAvailable(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list pickups")
	}

	return response.Success(c, "Pickups retrieved successfully", toPickupResponses(pickups))
}

// UpdateStatus handles pickup status transitions
// @Summary Update pickup status
// @Description Move a pickup through its lifecycle (claim, start, complete, cancel)
// @Tags Pickups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pickup ID"
// @Param body body services.UpdateStatusInput true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pickups/{id}/status [put]
func (h *PickupHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	pickupID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pickup ID")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	pickup, err := h.pickupService.UpdateStatus(c.Context(), pickupID, userID, role, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPickupNotFound):
			return response.NotFound(c, "Pickup not found")
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Unknown pickup status")
		case errors.Is(err, domain.ErrCitizenCancelOnly):
			return response.Forbidden(c, "Citizens may only cancel their pickups")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to update this pickup")
		case errors.Is(err, domain.ErrInvalidState):
			return response.BadRequest(c, "This transition is not allowed from the pickup's current status")
		default:
			return response.InternalServerError(c, "Failed to update pickup")
		}
	}

	return response.Success(c, "Pickup updated successfully", pickup.ToResponse())
}

// Delete handles pickup deletion
// @Summary Delete pickup
// @Description Delete a pending pickup request
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pickup ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pickups/{id} [delete]
func (h *PickupHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	pickupID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid pickup ID")
	}

	if err := h.pickupService.Delete(c.Context(), pickupID, userID, role); err != nil {
		switch {
		case errors.Is(err, domain.ErrPickupNotFound):
			return response.NotFound(c, "Pickup not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to delete this pickup")
		case errors.Is(err, domain.ErrInvalidState):
			return response.BadRequest(c, "Only pending pickups can be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete pickup")
		}
	}

	return response.Success(c, "Pickup deleted successfully", nil)
}

// Stats handles the caller's pickup statistics
// @Summary Get pickup stats
// @Description Get the current user's pickup totals
// @Tags Pickups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /pickups/stats [get]
func (h *PickupHandler) Stats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.pickupService.Stats(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get stats")
	}

	return response.Success(c, "Stats retrieved successfully", stats)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// toPickupResponses converts pickups to response DTOs
func toPickupResponses(pickups []*models.Pickup) []*models.PickupResponse {
	responses := make([]*models.PickupResponse, len(pickups))
	for i, p := range pickups {
		responses[i] = p.ToResponse()
	}
	return responses
}
