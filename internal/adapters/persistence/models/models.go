package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       string    `gorm:"size:20;not null;index" json:"role"`
	GreenCoins int       `gorm:"not null;default:0" json:"green_coins"`
	EcoScore   int       `gorm:"not null;default:0" json:"eco_score"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	GreenCoins int       `json:"green_coins"`
	EcoScore   int       `json:"eco_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		GreenCoins: u.GreenCoins,
		EcoScore:   u.EcoScore,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// PasswordResetToken represents password_reset_tokens table. Only the
// SHA-256 hash of the token is stored; the plain token travels in the
// reset link.
type PasswordResetToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *PasswordResetToken) IsUsed() bool {
	return t.UsedAt != nil
}

func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// ============================================================
// Pickup Tables
// ============================================================

// Pickup represents pickups table
type Pickup struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	CollectorID      *uint      `gorm:"index" json:"collector_id"`
	WasteType        string     `gorm:"size:20;not null" json:"waste_type"`
	Quantity         int        `gorm:"not null" json:"quantity"`
	Address          string     `gorm:"type:text;not null" json:"address"`
	Notes            *string    `gorm:"type:text" json:"notes"`
	PreferredDate    string     `gorm:"size:20;not null" json:"preferred_date"`
	PreferredTime    string     `gorm:"size:10;not null" json:"preferred_time"`
	Status           string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ScheduledDate    *time.Time `json:"scheduled_date"`
	CompletedDate    *time.Time `json:"completed_date"`
	GreenCoinsEarned *int       `json:"green_coins_earned"`
	Latitude         *float64   `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude        *float64   `gorm:"type:decimal(11,8)" json:"longitude"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Requester *User `gorm:"foreignKey:UserID" json:"-"`
	Collector *User `gorm:"foreignKey:CollectorID" json:"-"`
}

func (Pickup) TableName() string {
	return "pickups"
}

// PickupResponse DTO includes the requester's display name and email
type PickupResponse struct {
	ID               uint       `json:"id"`
	UserID           uint       `json:"user_id"`
	CollectorID      *uint      `json:"collector_id"`
	WasteType        string     `json:"waste_type"`
	Quantity         int        `json:"quantity"`
	Address          string     `json:"address"`
	Notes            *string    `json:"notes"`
	PreferredDate    string     `json:"preferred_date"`
	PreferredTime    string     `json:"preferred_time"`
	Status           string     `json:"status"`
	ScheduledDate    *time.Time `json:"scheduled_date"`
	CompletedDate    *time.Time `json:"completed_date"`
	GreenCoinsEarned *int       `json:"green_coins_earned"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	UserName         string     `json:"user_name,omitempty"`
	UserEmail        string     `json:"user_email,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (p *Pickup) ToResponse() *PickupResponse {
	resp := &PickupResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		CollectorID:      p.CollectorID,
		WasteType:        p.WasteType,
		Quantity:         p.Quantity,
		Address:          p.Address,
		Notes:            p.Notes,
		PreferredDate:    p.PreferredDate,
		PreferredTime:    p.PreferredTime,
		Status:           p.Status,
		ScheduledDate:    p.ScheduledDate,
		CompletedDate:    p.CompletedDate,
		GreenCoinsEarned: p.GreenCoinsEarned,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}

	if p.Requester != nil {
		resp.UserName = p.Requester.Name
		resp.UserEmail = p.Requester.Email
	}

	return resp
}

// PickupStatusUpdate carries the only fields a status transition may touch.
// Every transition side effect goes through this struct; there is no generic
// column-update path for pickups.
type PickupStatusUpdate struct {
	Status           string
	CollectorID      *uint
	ScheduledDate    *time.Time
	CompletedDate    *time.Time
	GreenCoinsEarned *int
}

// Columns converts the update into the column map applied by the repository
func (u *PickupStatusUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"status":     u.Status,
		"updated_at": time.Now(),
	}
	if u.CollectorID != nil {
		cols["collector_id"] = *u.CollectorID
	}
	if u.ScheduledDate != nil {
		cols["scheduled_date"] = *u.ScheduledDate
	}
	if u.CompletedDate != nil {
		cols["completed_date"] = *u.CompletedDate
	}
	if u.GreenCoinsEarned != nil {
		cols["green_coins_earned"] = *u.GreenCoinsEarned
	}
	return cols
}

// PickupStats aggregates a user's pickup activity
type PickupStats struct {
	TotalPickups     int64 `json:"total_pickups"`
	CompletedPickups int64 `json:"completed_pickups"`
	TotalGreenCoins  int64 `json:"total_green_coins"`
}

// ============================================================
// Reward Tables
// ============================================================

// Reward represents the rewards catalog table
type Reward struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	GreenCoinsRequired int       `gorm:"not null" json:"green_coins_required"`
	ImageURL           *string   `gorm:"type:text" json:"image_url"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Reward) TableName() string {
	return "rewards"
}

// UserReward statuses
const (
	UserRewardStatusPending   = "pending"
	UserRewardStatusRedeemed  = "redeemed"
	UserRewardStatusDelivered = "delivered"
)

// UserReward represents user_rewards table (redemption records)
type UserReward struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	RewardID   uint       `gorm:"not null;index" json:"reward_id"`
	Status     string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	RedeemedAt *time.Time `json:"redeemed_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Reward *Reward `gorm:"foreignKey:RewardID" json:"-"`
}

func (UserReward) TableName() string {
	return "user_rewards"
}

// UserRewardResponse DTO joins redemption records with catalog details
type UserRewardResponse struct {
	ID                 uint       `json:"id"`
	UserID             uint       `json:"user_id"`
	RewardID           uint       `json:"reward_id"`
	Status             string     `json:"status"`
	RedeemedAt         *time.Time `json:"redeemed_at"`
	Name               string     `json:"name,omitempty"`
	Description        string     `json:"description,omitempty"`
	GreenCoinsRequired int        `json:"green_coins_required,omitempty"`
	ImageURL           *string    `json:"image_url"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (ur *UserReward) ToResponse() *UserRewardResponse {
	resp := &UserRewardResponse{
		ID:         ur.ID,
		UserID:     ur.UserID,
		RewardID:   ur.RewardID,
		Status:     ur.Status,
		RedeemedAt: ur.RedeemedAt,
		CreatedAt:  ur.CreatedAt,
		UpdatedAt:  ur.UpdatedAt,
	}

	if ur.Reward != nil {
		resp.Name = ur.Reward.Name
		resp.Description = ur.Reward.Description
		resp.GreenCoinsRequired = ur.Reward.GreenCoinsRequired
		resp.ImageURL = ur.Reward.ImageURL
	}

	return resp
}

// ============================================================
// Payment Tables
// ============================================================

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment represents payments table
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string    `gorm:"size:3;not null;default:'INR'" json:"currency"`
	PaymentMethod string    `gorm:"size:50;not null" json:"payment_method"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	TransactionID *string   `gorm:"size:255" json:"transaction_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&PasswordResetToken{},
		&Pickup{},
		&Reward{},
		&UserReward{},
		&Payment{},
	)
}
