package domain

// Role represents a user role in the system
type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleCollector Role = "collector"
	RoleNGO       Role = "ngo"
)

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCitizen, RoleCollector, RoleNGO:
		return Role(s), true
	}
	return "", false
}

// PickupStatus represents the lifecycle status of a pickup request
type PickupStatus string

const (
	StatusPending    PickupStatus = "pending"
	StatusAccepted   PickupStatus = "accepted"
	StatusInProgress PickupStatus = "in-progress"
	StatusCompleted  PickupStatus = "completed"
	StatusCancelled  PickupStatus = "cancelled"
)

// ParsePickupStatus converts a raw string into a PickupStatus
func ParsePickupStatus(s string) (PickupStatus, bool) {
	switch PickupStatus(s) {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return PickupStatus(s), true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed from this status
func (s PickupStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// WasteType represents the category of waste to be collected
type WasteType string

const (
	WastePlastic WasteType = "plastic"
	WasteEWaste  WasteType = "e-waste"
	WastePaper   WasteType = "paper"
	WasteMetal   WasteType = "metal"
)

// ParseWasteType converts a raw string into a WasteType
func ParseWasteType(s string) (WasteType, bool) {
	switch WasteType(s) {
	case WastePlastic, WasteEWaste, WastePaper, WasteMetal:
		return WasteType(s), true
	}
	return "", false
}

// GreenCoinsPerUnit is the number of GreenCoins earned per unit of collected waste
const GreenCoinsPerUnit = 10
