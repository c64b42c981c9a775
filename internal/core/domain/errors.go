package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Pickup errors
var (
	ErrPickupNotFound    = errors.New("pickup not found")
	ErrInvalidStatus     = errors.New("invalid pickup status")
	ErrInvalidWasteType  = errors.New("invalid waste type")
	ErrInvalidState      = errors.New("operation not permitted in current state")
	ErrCitizenCancelOnly = errors.New("citizens may only cancel pickups")
)

// Reward errors
var (
	ErrRewardNotFound      = errors.New("reward not found")
	ErrInsufficientBalance = errors.New("not enough GreenCoins")
)
