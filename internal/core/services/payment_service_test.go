package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/adapters/persistence/repositories"
	"trash2trade/internal/core/domain"
)

func TestCreatePaymentSettlesImmediately(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(repositories.NewPaymentRepository(db))
	userID := seedUser(t, db, "Green Earth NGO", "ngo@example.com", "ngo", 0)

	payment, err := svc.Create(context.Background(), userID, &CreatePaymentInput{
		Amount:        500,
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if payment.Status != models.PaymentStatusCompleted {
		t.Errorf("status = %s, want completed", payment.Status)
	}
	if payment.Currency != "INR" {
		t.Errorf("currency = %s, want default INR", payment.Currency)
	}
	if payment.TransactionID == nil || !strings.HasPrefix(*payment.TransactionID, "txn_") {
		t.Errorf("transaction ID = %v, want txn_ prefix", payment.TransactionID)
	}
}

func TestPaymentValidationAndOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(repositories.NewPaymentRepository(db))
	ctx := context.Background()

	userID := seedUser(t, db, "Green Earth NGO", "ngo@example.com", "ngo", 0)
	otherID := seedUser(t, db, "John Citizen", "john@example.com", "citizen", 0)

	_, err := svc.Create(ctx, userID, &CreatePaymentInput{Amount: 0, PaymentMethod: "upi"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("zero amount: got %v, want ErrInvalidInput", err)
	}

	payment, err := svc.Create(ctx, userID, &CreatePaymentInput{Amount: 100, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Owner can read it
	if _, err := svc.GetByID(ctx, payment.ID, userID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}

	// Others cannot
	if _, err := svc.GetByID(ctx, payment.ID, otherID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other read: got %v, want ErrForbidden", err)
	}

	// Missing payment
	if _, err := svc.GetByID(ctx, 9999, userID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing payment: got %v, want ErrNotFound", err)
	}
}
