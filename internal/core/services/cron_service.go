package services

import (
	"context"
	"log"

	"trash2trade/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	resetTokenRepo   repositories.PasswordResetTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
		resetTokenRepo:   repositories.NewPasswordResetTokenRepository(db),
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() error {
	// Purge expired refresh tokens nightly at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron service started")
	return nil
}

// Stop stops the cron scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

// purgeExpiredTokens removes refresh and password reset tokens past their expiry
func (s *CronService) purgeExpiredTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Token purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d expired refresh tokens", deleted)
	}

	deleted, err = s.resetTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Reset token purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d expired password reset tokens", deleted)
	}
}
