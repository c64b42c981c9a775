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

// RewardHandler handles reward endpoints
type RewardHandler struct {
	rewardService *services.RewardService
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// RedeemRequest represents a redemption request body
type RedeemRequest struct {
	RewardID uint `json:"rewardId"`
}

// ListCatalog handles listing the reward catalog
// @Summary List rewards
// @Description List active rewards available for redemption
// @Tags Rewards
// @Produce json
// @Success 200 {object} response.Response
// @Router /rewards [get]
func (h *RewardHandler) ListCatalog(c *fiber.Ctx) error {
	rewards, err := h.rewardService.ListCatalog(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list rewards")
	}

	return response.Success(c, "Rewards retrieved successfully", rewards)
}

// GetByID handles fetching a single reward
// @Summary Get reward
// @Description Get a catalog reward by ID
// @Tags Rewards
// @Produce json
// @Param id path int true "Reward ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rewards/{id} [get]
func (h *RewardHandler) GetByID(c *fiber.Ctx) error {
	rewardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reward ID")
	}

	reward, err := h.rewardService.GetByID(c.Context(), uint(rewardID))
	if err != nil {
		if errors.Is(err, domain.ErrRewardNotFound) {
			return response.NotFound(c, "Reward not found")
		}
		return response.InternalServerError(c, "Failed to get reward")
	}

	return response.Success(c, "Reward retrieved successfully", reward)
}

// Redeem handles reward redemption
// @Summary Redeem reward
// @Description Exchange GreenCoins for a catalog reward
// @Tags Rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RedeemRequest true "Reward to redeem"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rewards/redeem [post]
func (h *RewardHandler) Redeem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RewardID == 0 {
		return response.BadRequest(c, "Reward ID is required")
	}

	userReward, err := h.rewardService.Redeem(c.Context(), userID, req.RewardID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRewardNotFound):
			return response.NotFound(c, "Reward not found")
		case errors.Is(err, domain.ErrInsufficientBalance):
			return response.BadRequest(c, "Not enough GreenCoins to redeem this reward")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to redeem reward")
		}
	}

	return response.Created(c, "Reward redeemed successfully", userReward.ToResponse())
}

// History handles listing the caller's redemption history
// @Summary Redemption history
// @Description List the current user's redeemed rewards
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /rewards/my [get]
func (h *RewardHandler) History(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	history, err := h.rewardService.History(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get redemption history")
	}

	responses := make([]*models.UserRewardResponse, len(history))
	for i, ur := range history {
		responses[i] = ur.ToResponse()
	}

	return response.Success(c, "Redemption history retrieved successfully", responses)
}
