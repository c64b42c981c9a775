package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trash2trade/internal/adapters/http/middleware"
	"trash2trade/internal/adapters/http/routes"
	"trash2trade/internal/adapters/persistence/models"
	"trash2trade/internal/config"
	"trash2trade/internal/pkg/jwt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func setupApp(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	routes.Setup(app, db, cfg)

	return &fixture{app: app, db: db, cfg: cfg}
}

func (f *fixture) seedUser(t *testing.T, name, email, role string, greenCoins int) uint {
	t.Helper()

	user := &models.User{
		Name:       name,
		Email:      email,
		Password:   "not-a-real-hash",
		Role:       role,
		GreenCoins: greenCoins,
	}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user.ID
}

func (f *fixture) token(t *testing.T, userID uint, name, email, role string) string {
	t.Helper()

	token, err := jwt.GenerateAccessToken(userID, name, email, role, f.cfg.JWT.Secret, f.cfg.JWT.AccessTokenMins)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func (f *fixture) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var envelope map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return envelope
}

func TestHealthEndpoints(t *testing.T) {
	f := setupApp(t)

	resp := f.request(t, "GET", "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: status = %d, want 200", resp.StatusCode)
	}
	body := decodeEnvelope(t, resp)
	checks, _ := body["checks"].(map[string]interface{})
	if checks["database"] != "healthy" {
		t.Errorf("database check = %v, want healthy", checks["database"])
	}

	resp = f.request(t, "GET", "/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("root: status = %d, want 200", resp.StatusCode)
	}
	root := decodeEnvelope(t, resp)
	if root["mode"] != "dev" {
		t.Errorf("mode = %v, want dev", root["mode"])
	}
}

func TestPickupRequiresAuth(t *testing.T) {
	f := setupApp(t)

	resp := f.request(t, "GET", "/api/pickups/my", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestPickupCreateRoleEnforced(t *testing.T) {
	f := setupApp(t)

	citizenID := f.seedUser(t, "John Citizen", "john@example.com", "citizen", 0)
	collectorID := f.seedUser(t, "Jane Collector", "jane@example.com", "collector", 0)
	citizenToken := f.token(t, citizenID, "John Citizen", "john@example.com", "citizen")
	collectorToken := f.token(t, collectorID, "Jane Collector", "jane@example.com", "collector")

	body := map[string]interface{}{
		"waste_type":     "plastic",
		"quantity":       2,
		"address":        "12 MG Road, Bengaluru",
		"preferred_date": "2026-09-01",
		"preferred_time": "10:00",
	}

	// Citizen may create
	resp := f.request(t, "POST", "/api/pickups", citizenToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("citizen create: status = %d, want 201", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if success, _ := envelope["success"].(bool); !success {
		t.Error("citizen create should succeed")
	}

	// Collector may not
	resp = f.request(t, "POST", "/api/pickups", collectorToken, body)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("collector create: status = %d, want 403", resp.StatusCode)
	}
}

func TestPickupLifecycleOverHTTP(t *testing.T) {
	f := setupApp(t)

	citizenID := f.seedUser(t, "John Citizen", "john@example.com", "citizen", 0)
	collectorID := f.seedUser(t, "Jane Collector", "jane@example.com", "collector", 0)
	citizenToken := f.token(t, citizenID, "John Citizen", "john@example.com", "citizen")
	collectorToken := f.token(t, collectorID, "Jane Collector", "jane@example.com", "collector")

	// Create
	resp := f.request(t, "POST", "/api/pickups", citizenToken, map[string]interface{}{
		"waste_type":     "e-waste",
		"quantity":       5,
		"address":        "12 MG Road, Bengaluru",
		"preferred_date": "2026-09-01",
		"preferred_time": "10:00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", resp.StatusCode)
	}
	created := decodeEnvelope(t, resp)
	data := created["data"].(map[string]interface{})
	pickupID := int(data["id"].(float64))

	// Collector sees it in the available feed
	resp = f.request(t, "GET", "/api/pickups/available", collectorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("available: status = %d, want 200", resp.StatusCode)
	}

	// Citizens may not browse the feed
	resp = f.request(t, "GET", "/api/pickups/available", citizenToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("citizen available: status = %d, want 403", resp.StatusCode)
	}

	// Claim, start, complete
	for _, status := range []string{"accepted", "in-progress", "completed"} {
		resp = f.request(t, "PUT", fmt.Sprintf("/api/pickups/%d/status", pickupID), collectorToken,
			map[string]string{"status": status})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", status, resp.StatusCode)
		}
	}

	// 5 units earn 50 coins
	var citizen models.User
	if err := f.db.First(&citizen, citizenID).Error; err != nil {
		t.Fatalf("failed to load citizen: %v", err)
	}
	if citizen.GreenCoins != 50 {
		t.Errorf("balance = %d, want 50", citizen.GreenCoins)
	}

	// Terminal state rejects further transitions
	resp = f.request(t, "PUT", fmt.Sprintf("/api/pickups/%d/status", pickupID), collectorToken,
		map[string]string{"status": "cancelled"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("cancel completed: status = %d, want 400", resp.StatusCode)
	}

	// The requester can still read the completed pickup; an unrelated
	// citizen cannot
	resp = f.request(t, "GET", fmt.Sprintf("/api/pickups/%d", pickupID), citizenToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("owner read: status = %d, want 200", resp.StatusCode)
	}
	otherID := f.seedUser(t, "Priya Citizen", "priya@example.com", "citizen", 0)
	otherToken := f.token(t, otherID, "Priya Citizen", "priya@example.com", "citizen")
	resp = f.request(t, "GET", fmt.Sprintf("/api/pickups/%d", pickupID), otherToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger read: status = %d, want 403", resp.StatusCode)
	}
}

func TestRewardRedeemOverHTTP(t *testing.T) {
	f := setupApp(t)

	userID := f.seedUser(t, "John Citizen", "john@example.com", "citizen", 40)
	token := f.token(t, userID, "John Citizen", "john@example.com", "citizen")

	reward := &models.Reward{Name: "Eco Bottle", GreenCoinsRequired: 50, IsActive: true}
	if err := f.db.Create(reward).Error; err != nil {
		t.Fatalf("failed to seed reward: %v", err)
	}

	// The catalog is browsable without an account
	resp := f.request(t, "GET", "/api/rewards/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("public catalog: status = %d, want 200", resp.StatusCode)
	}

	// Redeeming is not
	resp = f.request(t, "POST", "/api/rewards/redeem", "", map[string]uint{"rewardId": reward.ID})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous redeem: status = %d, want 401", resp.StatusCode)
	}

	// Not enough coins
	resp = f.request(t, "POST", "/api/rewards/redeem", token, map[string]uint{"rewardId": reward.ID})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("redeem poor: status = %d, want 400", resp.StatusCode)
	}

	// Top up and retry
	if err := f.db.Model(&models.User{}).Where("id = ?", userID).Update("green_coins", 60).Error; err != nil {
		t.Fatalf("failed to top up: %v", err)
	}
	resp = f.request(t, "POST", "/api/rewards/redeem", token, map[string]uint{"rewardId": reward.ID})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("redeem rich: status = %d, want 201", resp.StatusCode)
	}

	var user models.User
	if err := f.db.First(&user, userID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user.GreenCoins != 10 {
		t.Errorf("balance = %d, want 10", user.GreenCoins)
	}
}

func TestResetPasswordNeedsTokenOverHTTP(t *testing.T) {
	f := setupApp(t)

	// Register a victim account
	resp := f.request(t, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Victim User",
		"email":    "victim@example.com",
		"password": "password123",
		"role":     "citizen",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status = %d, want 201", resp.StatusCode)
	}

	// An email-only reset must be rejected without touching credentials
	resp = f.request(t, "POST", "/api/auth/reset-password", "", map[string]string{
		"email":        "victim@example.com",
		"new_password": "attacker-chosen-pw",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("email-only reset: status = %d, want 400", resp.StatusCode)
	}

	// The attacker's password does not log in
	resp = f.request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "victim@example.com",
		"password": "attacker-chosen-pw",
		"role":     "citizen",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("attacker login: status = %d, want 401", resp.StatusCode)
	}

	// The victim's password still does
	resp = f.request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "victim@example.com",
		"password": "password123",
		"role":     "citizen",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("victim login: status = %d, want 200", resp.StatusCode)
	}

	// A bogus token is rejected the same way
	resp = f.request(t, "POST", "/api/auth/reset-password", "", map[string]string{
		"token":        "made-up-token",
		"new_password": "attacker-chosen-pw",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bogus token reset: status = %d, want 400", resp.StatusCode)
	}
}

func TestDashboardPerRole(t *testing.T) {
	f := setupApp(t)

	for _, tc := range []struct {
		role  string
		email string
	}{
		{"citizen", "john@example.com"},
		{"collector", "jane@example.com"},
		{"ngo", "ngo@example.com"},
	} {
		userID := f.seedUser(t, tc.role, tc.email, tc.role, 0)
		token := f.token(t, userID, tc.role, tc.email, tc.role)

		resp := f.request(t, "GET", "/api/dashboard/", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s dashboard: status = %d, want 200", tc.role, resp.StatusCode)
		}
	}
}
