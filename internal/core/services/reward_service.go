package services

import (
	"context"
	"errors"
	"log"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/adapters/persistence/repositories"
	"trash2trade/internal/core/domain"

	"gorm.io/gorm"
)

// RewardService handles reward catalog and redemption business logic
type RewardService struct {
	rewardRepo *repositories.RewardRepository
}

// NewRewardService creates a new reward service
func NewRewardService(rewardRepo *repositories.RewardRepository) *RewardService {
	return &RewardService{rewardRepo: rewardRepo}
}

// ListCatalog lists the active reward catalog
func (s *RewardService) ListCatalog(ctx context.Context) ([]*models.Reward, error) {
	return s.rewardRepo.ListActive(ctx)
}

// GetByID gets a catalog reward by ID
func (s *RewardService) GetByID(ctx context.Context, rewardID uint) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, err
	}
	return reward, nil
}

// Redeem exchanges GreenCoins for a catalog reward. The debit and the
// redemption record are written in one transaction, so a failed redemption
// never leaves a partial debit behind.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID uint) (*models.UserReward, error) {
	userReward, err := s.rewardRepo.Redeem(ctx, userID, rewardID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Reward #%d redeemed by user %d", rewardID, userID)
	return userReward, nil
}

// History lists the user's redemption history
func (s *RewardService) History(ctx context.Context, userID uint) ([]*models.UserReward, error) {
	return s.rewardRepo.HistoryByUser(ctx, userID)
}
