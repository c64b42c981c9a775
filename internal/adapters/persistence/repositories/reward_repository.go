package repositories

import (
	"context"
	"errors"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/core/domain"

	"gorm.io/gorm"
)

// RewardRepository handles reward catalog and redemption data access
type RewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// ListActive lists active catalog rewards, cheapest first
func (r *RewardRepository) ListActive(ctx context.Context) ([]*models.Reward, error) {
	var rewards []*models.Reward
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("green_coins_required ASC").
		Find(&rewards).Error
	return rewards, err
}

// GetByID gets a catalog reward by ID
func (r *RewardRepository) GetByID(ctx context.Context, id uint) (*models.Reward, error) {
	var reward models.Reward
	err := r.db.WithContext(ctx).First(&reward, id).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

// Redeem debits the user's GreenCoins balance and records the redemption as
// one transaction. The debit is a single conditional statement guarded on
// green_coins >= cost, so two concurrent redemptions cannot both succeed when
// only one fits the balance. Any failure rolls back fully.
func (r *RewardRepository) Redeem(ctx context.Context, userID, rewardID uint) (*models.UserReward, error) {
	var userReward *models.UserReward

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRewardNotFound
			}
			return err
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND green_coins >= ?", userID, reward.GreenCoinsRequired).
			Update("green_coins", gorm.Expr("green_coins - ?", reward.GreenCoinsRequired))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientBalance
		}

		ur := &models.UserReward{
			UserID:   userID,
			RewardID: rewardID,
			Status:   models.UserRewardStatusPending,
		}
		if err := tx.Create(ur).Error; err != nil {
			return err
		}

		userReward = ur
		return nil
	})
	if err != nil {
		return nil, err
	}

	return userReward, nil
}

// HistoryByUser lists a user's redemptions with catalog details, newest first
func (r *RewardRepository) HistoryByUser(ctx context.Context, userID uint) ([]*models.UserReward, error) {
	var userRewards []*models.UserReward
	err := r.db.WithContext(ctx).
		Preload("Reward").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&userRewards).Error
	return userRewards, err
}
