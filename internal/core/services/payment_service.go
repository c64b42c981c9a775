package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/adapters/persistence/repositories"
	"trash2trade/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService handles simulated payment processing. There is no real
// gateway behind it: every payment settles immediately with a locally
// generated transaction ID.
type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo *repositories.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// CreatePaymentInput represents create payment input
type CreatePaymentInput struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency,omitempty"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
}

// Create records a payment and settles it immediately
func (s *PaymentService) Create(ctx context.Context, userID uint, input *CreatePaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 || input.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}

	transactionID := fmt.Sprintf("txn_%s", uuid.New().String())

	payment := &models.Payment{
		UserID:        userID,
		Amount:        input.Amount,
		Currency:      currency,
		PaymentMethod: input.PaymentMethod,
		Status:        models.PaymentStatusCompleted,
		TransactionID: &transactionID,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("✅ Payment #%d settled: %.2f %s (%s)", payment.ID, payment.Amount, payment.Currency, transactionID)
	return payment, nil
}

// GetByID gets a payment by ID. Users can only see their own payments.
func (s *PaymentService) GetByID(ctx context.Context, paymentID, userID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if payment.UserID != userID {
		return nil, domain.ErrForbidden
	}

	return payment, nil
}

// History lists the user's payments
func (s *PaymentService) History(ctx context.Context, userID uint) ([]*models.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}
