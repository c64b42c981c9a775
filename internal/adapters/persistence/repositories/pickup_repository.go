package repositories

import (
	"context"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/core/domain"

	"gorm.io/gorm"
)

// PickupRepository handles pickup data access
type PickupRepository struct {
	db *gorm.DB
}

// NewPickupRepository creates a new pickup repository
func NewPickupRepository(db *gorm.DB) *PickupRepository {
	return &PickupRepository{db: db}
}

// Create creates a new pickup request
func (r *PickupRepository) Create(ctx context.Context, pickup *models.Pickup) error {
	return r.db.WithContext(ctx).Create(pickup).Error
}

// GetByID gets a pickup by ID with the requester joined
func (r *PickupRepository) GetByID(ctx context.Context, id uint) (*models.Pickup, error) {
	var pickup models.Pickup
	err := r.db.WithContext(ctx).
		Preload("Requester").
		First(&pickup, id).Error
	if err != nil {
		return nil, err
	}
	return &pickup, nil
}

// ListByRequester lists pickups created by a user, newest first
func (r *PickupRepository) ListByRequester(ctx context.Context, userID uint) ([]*models.Pickup, error) {
	var pickups []*models.Pickup
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pickups).Error
	return pickups, err
}

// ListByCollector lists pickups assigned to a collector, newest first
func (r *PickupRepository) ListByCollector(ctx context.Context, collectorID uint) ([]*models.Pickup, error) {
	var pickups []*models.Pickup
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("collector_id = ?", collectorID).
		Order("created_at DESC").
		Find(&pickups).Error
	return pickups, err
}

// ListPending lists all unclaimed pickups (the available-for-claim feed)
func (r *PickupRepository) ListPending(ctx context.Context) ([]*models.Pickup, error) {
	var pickups []*models.Pickup
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("status = ?", string(domain.StatusPending)).
		Order("created_at DESC").
		Find(&pickups).Error
	return pickups, err
}

// Claim atomically assigns a collector to an unclaimed pickup and moves it to
// accepted. The collector_id IS NULL guard makes the check-and-set a single
// conditional statement, so two racing claims cannot both succeed. Returns
// false when the pickup was already claimed.
func (r *PickupRepository) Claim(ctx context.Context, id uint, upd *models.PickupStatusUpdate) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Pickup{}).
		Where("id = ? AND collector_id IS NULL", id).
		Updates(upd.Columns())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatus applies a transition's side effects in a single statement,
// guarded on the expected current status
func (r *PickupRepository) UpdateStatus(ctx context.Context, id uint, fromStatus string, upd *models.PickupStatusUpdate) error {
	result := r.db.WithContext(ctx).
		Model(&models.Pickup{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(upd.Columns())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// Complete applies the completion transition and credits the requester's
// GreenCoins balance in the same transaction
func (r *PickupRepository) Complete(ctx context.Context, id uint, fromStatus string, upd *models.PickupStatusUpdate, requesterID uint, coins int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Pickup{}).
			Where("id = ? AND status = ?", id, fromStatus).
			Updates(upd.Columns())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrInvalidState
		}

		return tx.Model(&models.User{}).
			Where("id = ?", requesterID).
			Update("green_coins", gorm.Expr("green_coins + ?", coins)).Error
	})
}

// DeletePending deletes a pickup only while it is still pending. Returns
// false when the pickup has already progressed past pending.
func (r *PickupRepository) DeletePending(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Delete(&models.Pickup{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Stats aggregates a user's pickup totals; null coin sums count as zero
func (r *PickupRepository) Stats(ctx context.Context, userID uint) (*models.PickupStats, error) {
	var stats models.PickupStats
	err := r.db.WithContext(ctx).
		Model(&models.Pickup{}).
		Where("user_id = ?", userID).
		Select(
			"COUNT(*) as total_pickups, " +
				"COUNT(CASE WHEN status = 'completed' THEN 1 END) as completed_pickups, " +
				"COALESCE(SUM(CASE WHEN status = 'completed' THEN green_coins_earned ELSE 0 END), 0) as total_green_coins",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
