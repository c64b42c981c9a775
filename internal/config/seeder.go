package config

import (
	"log"

	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRewards(); err != nil {
		log.Printf("⚠️ Reward seeder skipped: %v", err)
	}

	if err := s.seedDemoUsers(); err != nil {
		log.Printf("⚠️ Demo user seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedRewards seeds the default reward catalog
func (s *Seeder) seedRewards() error {
	var count int64
	s.db.Model(&models.Reward{}).Count(&count)
	if count > 0 {
		return nil // Catalog already seeded
	}

	rewards := []models.Reward{
		{Name: "Eco-Friendly Water Bottle", Description: "Reusable stainless steel water bottle", GreenCoinsRequired: 50, IsActive: true},
		{Name: "Recycled Notebook Set", Description: "Set of 3 notebooks made from recycled paper", GreenCoinsRequired: 75, IsActive: true},
		{Name: "Solar Power Bank", Description: "10000mAh solar-powered charging bank", GreenCoinsRequired: 150, IsActive: true},
		{Name: "Plant a Tree", Description: "We plant a tree in your name", GreenCoinsRequired: 100, IsActive: true},
		{Name: "Eco-Friendly Tote Bag", Description: "Durable canvas tote bag", GreenCoinsRequired: 30, IsActive: true},
	}

	if err := s.db.Create(&rewards).Error; err != nil {
		return err
	}

	log.Printf("✅ Reward catalog seeded: %d rewards", len(rewards))
	return nil
}

// seedDemoUsers seeds demo accounts for each role
// This is for development/testing only
func (s *Seeder) seedDemoUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil // Users already exist
	}

	hashedPassword, err := password.Hash("password123")
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "John Citizen", Email: "john@example.com", Password: hashedPassword, Role: "citizen", GreenCoins: 50, EcoScore: 100},
		{Name: "Jane Collector", Email: "jane@example.com", Password: hashedPassword, Role: "collector"},
		{Name: "Green Earth NGO", Email: "ngo@example.com", Password: hashedPassword, Role: "ngo"},
	}

	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	log.Printf("✅ Demo users created: %d accounts", len(users))
	return nil
}
