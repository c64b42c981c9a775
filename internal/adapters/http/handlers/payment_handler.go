package handlers

import (
	"errors"
	"strconv"

	"trash2trade/internal/core/domain"
	"trash2trade/internal/core/services"
	"trash2trade/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles payment creation
// @Summary Create payment
// @Description Record a payment (settled immediately, no real gateway)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePaymentInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.paymentService.Create(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Amount and payment method are required")
		}
		return response.InternalServerError(c, "Failed to create payment")
	}

	return response.Created(c, "Payment processed successfully", payment)
}

// GetByID handles fetching a single payment
// @Summary Get payment
// @Description Get one of the current user's payments by ID
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	paymentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.paymentService.GetByID(c.Context(), uint(paymentID), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You don't have permission to view this payment")
		default:
			return response.InternalServerError(c, "Failed to get payment")
		}
	}

	return response.Success(c, "Payment retrieved successfully", payment)
}

// History handles listing the caller's payments
// @Summary Payment history
// @Description List the current user's payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) History(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	payments, err := h.paymentService.History(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get payments")
	}

	return response.Success(c, "Payments retrieved successfully", payments)
}
