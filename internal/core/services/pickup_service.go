package services

import (
	"context"
	"errors"
	"log"
	"time"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/adapters/persistence/repositories"
	"trash2trade/internal/core/domain"

	"gorm.io/gorm"
)

// PickupService handles pickup lifecycle business logic
type PickupService struct {
	pickupRepo *repositories.PickupRepository
}

// NewPickupService creates a new pickup service
func NewPickupService(pickupRepo *repositories.PickupRepository) *PickupService {
	return &PickupService{pickupRepo: pickupRepo}
}

// CreatePickupInput represents create pickup input
type CreatePickupInput struct {
	WasteType     string   `json:"waste_type" validate:"required,oneof=plastic e-waste paper metal"`
	Quantity      int      `json:"quantity" validate:"required,gt=0"`
	Address       string   `json:"address" validate:"required"`
	Notes         *string  `json:"notes,omitempty"`
	PreferredDate string   `json:"preferred_date" validate:"required"`
	PreferredTime string   `json:"preferred_time" validate:"required"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// UpdateStatusInput represents a requested status transition. CollectorID is
// accepted for wire compatibility but assignment always follows the acting
// account through the claim path.
type UpdateStatusInput struct {
	Status      string `json:"status" validate:"required"`
	CollectorID *uint  `json:"collector_id,omitempty"`
}

// Create creates a new pickup request in pending status
func (s *PickupService) Create(ctx context.Context, userID uint, input *CreatePickupInput) (*models.Pickup, error) {
	if _, ok := domain.ParseWasteType(input.WasteType); !ok {
		return nil, domain.ErrInvalidWasteType
	}
	if input.Quantity <= 0 || input.Address == "" || input.PreferredDate == "" || input.PreferredTime == "" {
		return nil, domain.ErrInvalidInput
	}

	pickup := &models.Pickup{
		UserID:        userID,
		WasteType:     input.WasteType,
		Quantity:      input.Quantity,
		Address:       input.Address,
		Notes:         input.Notes,
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
		Status:        string(domain.StatusPending),
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
	}

	if err := s.pickupRepo.Create(ctx, pickup); err != nil {
		return nil, err
	}

	log.Printf("✅ Pickup created: #%d (%s x%d)", pickup.ID, pickup.WasteType, pickup.Quantity)
	return pickup, nil
}

// GetByID gets a pickup by ID
func (s *PickupService) GetByID(ctx context.Context, pickupID uint) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(ctx, pickupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickupNotFound
		}
		return nil, err
	}
	return pickup, nil
}

// GetForActor fetches a pickup applying the read-permission rules: citizens
// may only read their own pickups, collectors may read pickups assigned to
// them or still unassigned.
func (s *PickupService) GetForActor(ctx context.Context, pickupID, actorID uint, actorRole string) (*models.Pickup, error) {
	pickup, err := s.GetByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}

	role, ok := domain.ParseRole(actorRole)
	if !ok {
		return nil, domain.ErrForbidden
	}

	switch role {
	case domain.RoleCitizen:
		if pickup.UserID != actorID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleCollector:
		if pickup.CollectorID != nil && *pickup.CollectorID != actorID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleNGO:
		return nil, domain.ErrForbidden
	}

	return pickup, nil
}

// ListMine lists pickups requested by the user
func (s *PickupService) ListMine(ctx context.Context, userID uint) ([]*models.Pickup, error) {
	return s.pickupRepo.ListByRequester(ctx, userID)
}

// ListForCollector lists pickups assigned to the collector
func (s *PickupService) ListForCollector(ctx context.Context, collectorID uint) ([]*models.Pickup, error) {
	return s.pickupRepo.ListByCollector(ctx, collectorID)
}

// ListAvailable lists unclaimed pending pickups
func (s *PickupService) ListAvailable(ctx context.Context) ([]*models.Pickup, error) {
	return s.pickupRepo.ListPending(ctx)
}

// UpdateStatus applies a status transition requested by an actor. Who may
// move a pickup where depends on their role:
//   - citizens may only cancel, and only their own pickups
//   - collectors claim a pending pickup by moving it to accepted, and may
//     advance or cancel only pickups assigned to them
//   - NGOs sponsor pickups but never operate them
//
// The transition itself must also be legal for the pickup's current status.
func (s *PickupService) UpdateStatus(ctx context.Context, pickupID, actorID uint, actorRole string, input *UpdateStatusInput) (*models.Pickup, error) {
	pickup, err := s.GetByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}

	newStatus, ok := domain.ParsePickupStatus(input.Status)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	role, ok := domain.ParseRole(actorRole)
	if !ok {
		return nil, domain.ErrForbidden
	}

	current := domain.PickupStatus(pickup.Status)

	switch role {
	case domain.RoleCitizen:
		if pickup.UserID != actorID {
			return nil, domain.ErrForbidden
		}
		if newStatus != domain.StatusCancelled {
			return nil, domain.ErrCitizenCancelOnly
		}

	case domain.RoleCollector:
		if newStatus == domain.StatusAccepted && pickup.CollectorID == nil {
			return s.claim(ctx, pickup, actorID, current)
		}
		if pickup.CollectorID == nil || *pickup.CollectorID != actorID {
			return nil, domain.ErrForbidden
		}

	case domain.RoleNGO:
		return nil, domain.ErrForbidden
	}

	if !domain.CanTransition(current, newStatus) {
		return nil, domain.ErrInvalidState
	}

	upd := &models.PickupStatusUpdate{Status: string(newStatus)}

	if newStatus == domain.StatusCompleted {
		now := time.Now()
		coins := domain.GreenCoinsPerUnit * pickup.Quantity
		upd.CompletedDate = &now
		upd.GreenCoinsEarned = &coins

		if err := s.pickupRepo.Complete(ctx, pickupID, string(current), upd, pickup.UserID, coins); err != nil {
			return nil, err
		}
		log.Printf("✅ Pickup #%d completed: %d GreenCoins credited to user %d", pickupID, coins, pickup.UserID)
	} else {
		if err := s.pickupRepo.UpdateStatus(ctx, pickupID, string(current), upd); err != nil {
			return nil, err
		}
		log.Printf("✅ Pickup #%d: %s → %s", pickupID, current, newStatus)
	}

	return s.GetByID(ctx, pickupID)
}

// claim assigns the collector to an unclaimed pending pickup. The
// repository's conditional update decides the winner when two collectors
// claim at once; the loser gets ErrForbidden like any other collector
// touching a pickup that is not theirs.
func (s *PickupService) claim(ctx context.Context, pickup *models.Pickup, collectorID uint, current domain.PickupStatus) (*models.Pickup, error) {
	if !domain.CanTransition(current, domain.StatusAccepted) {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	upd := &models.PickupStatusUpdate{
		Status:        string(domain.StatusAccepted),
		CollectorID:   &collectorID,
		ScheduledDate: &now,
	}

	claimed, err := s.pickupRepo.Claim(ctx, pickup.ID, upd)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, domain.ErrForbidden
	}

	log.Printf("✅ Pickup #%d claimed by collector %d", pickup.ID, collectorID)
	return s.GetByID(ctx, pickup.ID)
}

// Delete removes a pickup request. Only the requesting citizen may delete,
// and only while the pickup is still pending.
func (s *PickupService) Delete(ctx context.Context, pickupID, actorID uint, actorRole string) error {
	pickup, err := s.GetByID(ctx, pickupID)
	if err != nil {
		return err
	}

	if actorRole != string(domain.RoleCitizen) || pickup.UserID != actorID {
		return domain.ErrForbidden
	}

	deleted, err := s.pickupRepo.DeletePending(ctx, pickupID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrInvalidState
	}

	log.Printf("✅ Pickup #%d deleted", pickupID)
	return nil
}

// Stats returns the user's pickup totals
func (s *PickupService) Stats(ctx context.Context, userID uint) (*models.PickupStats, error) {
	return s.pickupRepo.Stats(ctx, userID)
}
