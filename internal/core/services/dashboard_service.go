package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Citizen Dashboard
// ============================================================

// CitizenDashboardData represents citizen dashboard data
type CitizenDashboardData struct {
	GreenCoins       int   `json:"green_coins"`
	EcoScore         int   `json:"eco_score"`
	TotalPickups     int64 `json:"total_pickups"`
	PendingPickups   int64 `json:"pending_pickups"`
	CompletedPickups int64 `json:"completed_pickups"`
	TotalCoinsEarned int64 `json:"total_coins_earned"`
	RewardsRedeemed  int64 `json:"rewards_redeemed"`

	RecentPickups []PickupSummary `json:"recent_pickups"`
}

// PickupSummary represents pickup summary
type PickupSummary struct {
	ID               uint      `json:"id"`
	WasteType        string    `json:"waste_type"`
	Quantity         int       `json:"quantity"`
	Status           string    `json:"status"`
	GreenCoinsEarned *int      `json:"green_coins_earned"`
	CreatedAt        time.Time `json:"created_at"`
}

// GetCitizenDashboard returns citizen dashboard data
func (s *DashboardService) GetCitizenDashboard(ctx context.Context, userID uint) (*CitizenDashboardData, error) {
	data := &CitizenDashboardData{}

	// Balance and score
	s.db.WithContext(ctx).Table("users").
		Where("id = ?", userID).
		Select("green_coins").
		Scan(&data.GreenCoins)
	s.db.WithContext(ctx).Table("users").
		Where("id = ?", userID).
		Select("eco_score").
		Scan(&data.EcoScore)

	// Pickup counts by status
	s.db.WithContext(ctx).Table("pickups").Where("user_id = ?", userID).Count(&data.TotalPickups)
	s.db.WithContext(ctx).Table("pickups").Where("user_id = ? AND status = ?", userID, "pending").Count(&data.PendingPickups)
	s.db.WithContext(ctx).Table("pickups").Where("user_id = ? AND status = ?", userID, "completed").Count(&data.CompletedPickups)

	// Lifetime coins earned from completed pickups
	s.db.WithContext(ctx).Table("pickups").
		Where("user_id = ? AND status = ?", userID, "completed").
		Select("COALESCE(SUM(green_coins_earned), 0)").
		Scan(&data.TotalCoinsEarned)

	// Redemption count
	s.db.WithContext(ctx).Table("user_rewards").Where("user_id = ?", userID).Count(&data.RewardsRedeemed)

	// Recent pickups
	var recent []PickupSummary
	s.db.WithContext(ctx).Table("pickups").
		Select("id, waste_type, quantity, status, green_coins_earned, created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Scan(&recent)
	data.RecentPickups = recent

	return data, nil
}

// ============================================================
// Collector Dashboard
// ============================================================

// CollectorDashboardData represents collector dashboard data
type CollectorDashboardData struct {
	AvailablePickups int64 `json:"available_pickups"`
	AssignedPickups  int64 `json:"assigned_pickups"`
	ActivePickups    int64 `json:"active_pickups"`
	CompletedPickups int64 `json:"completed_pickups"`
	CompletedToday   int64 `json:"completed_today"`

	TodaysPickups []PickupSummary `json:"todays_pickups"`
}

// GetCollectorDashboard returns collector dashboard data
func (s *DashboardService) GetCollectorDashboard(ctx context.Context, collectorID uint) (*CollectorDashboardData, error) {
	data := &CollectorDashboardData{}

	s.db.WithContext(ctx).Table("pickups").Where("status = ?", "pending").Count(&data.AvailablePickups)
	s.db.WithContext(ctx).Table("pickups").Where("collector_id = ?", collectorID).Count(&data.AssignedPickups)
	s.db.WithContext(ctx).Table("pickups").
		Where("collector_id = ? AND status IN ?", collectorID, []string{"accepted", "in-progress"}).
		Count(&data.ActivePickups)
	s.db.WithContext(ctx).Table("pickups").
		Where("collector_id = ? AND status = ?", collectorID, "completed").
		Count(&data.CompletedPickups)

	startOfDay := time.Now().Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("pickups").
		Where("collector_id = ? AND status = ? AND completed_date >= ?", collectorID, "completed", startOfDay).
		Count(&data.CompletedToday)

	// Today's scheduled work
	var todays []PickupSummary
	s.db.WithContext(ctx).Table("pickups").
		Select("id, waste_type, quantity, status, green_coins_earned, created_at").
		Where("collector_id = ? AND status IN ? AND scheduled_date >= ?", collectorID, []string{"accepted", "in-progress"}, startOfDay).
		Order("scheduled_date ASC").
		Scan(&todays)
	data.TodaysPickups = todays

	return data, nil
}

// ============================================================
// NGO Dashboard
// ============================================================

// NGODashboardData represents NGO dashboard data
type NGODashboardData struct {
	TotalUsers       int64 `json:"total_users"`
	TotalCitizens    int64 `json:"total_citizens"`
	TotalCollectors  int64 `json:"total_collectors"`
	TotalPickups     int64 `json:"total_pickups"`
	CompletedPickups int64 `json:"completed_pickups"`
	PickupsThisMonth int64 `json:"pickups_this_month"`
	CoinsDistributed int64 `json:"coins_distributed"`

	WasteBreakdown []WasteTypeStats `json:"waste_breakdown"`
}

// WasteTypeStats represents per-type collection totals
type WasteTypeStats struct {
	WasteType     string `json:"waste_type"`
	TotalPickups  int64  `json:"total_pickups"`
	TotalQuantity int64  `json:"total_quantity"`
}

// GetNGODashboard returns NGO dashboard data
func (s *DashboardService) GetNGODashboard(ctx context.Context) (*NGODashboardData, error) {
	data := &NGODashboardData{}

	// Community totals
	s.db.WithContext(ctx).Table("users").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ?", "citizen").Count(&data.TotalCitizens)
	s.db.WithContext(ctx).Table("users").Where("role = ?", "collector").Count(&data.TotalCollectors)
	s.db.WithContext(ctx).Table("pickups").Count(&data.TotalPickups)
	s.db.WithContext(ctx).Table("pickups").Where("status = ?", "completed").Count(&data.CompletedPickups)

	// This month
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("pickups").
		Where("created_at >= ?", startOfMonth).
		Count(&data.PickupsThisMonth)

	// Coins distributed
	s.db.WithContext(ctx).Table("pickups").
		Where("status = ?", "completed").
		Select("COALESCE(SUM(green_coins_earned), 0)").
		Scan(&data.CoinsDistributed)

	// Collection totals by waste type
	var breakdown []WasteTypeStats
	s.db.WithContext(ctx).Table("pickups").
		Select("waste_type, COUNT(*) as total_pickups, COALESCE(SUM(quantity), 0) as total_quantity").
		Where("status = ?", "completed").
		Group("waste_type").
		Order("total_quantity DESC").
		Scan(&breakdown)
	data.WasteBreakdown = breakdown

	return data, nil
}
