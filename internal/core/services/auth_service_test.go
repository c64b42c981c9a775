package services

import (
	"context"
	"errors"
	"testing"

	"trash2trade/internal/adapters/persistence/repositories"
	"trash2trade/internal/config"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		repositories.NewPasswordResetTokenRepository(db),
		cfg,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Name: "John Citizen", Email: "john@example.com", Password: "password123", Role: "citizen",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("registration should issue both tokens")
	}
	if result.User.Role != "citizen" {
		t.Errorf("role = %s, want citizen", result.User.Role)
	}

	// Duplicate email
	_, err = svc.Register(ctx, &RegisterInput{
		Name: "John Again", Email: "john@example.com", Password: "password123", Role: "citizen",
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate register: got %v, want ErrUserAlreadyExists", err)
	}

	// Login with matching role
	login, err := svc.Login(ctx, &LoginInput{Email: "john@example.com", Password: "password123", Role: "citizen"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Access token is valid
	claims, err := svc.ValidateAccessToken(login.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Email != "john@example.com" || claims.Role != "citizen" {
		t.Errorf("claims = %s/%s, want john@example.com/citizen", claims.Email, claims.Role)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Name: "John Citizen", Email: "john@example.com", Password: "password123", Role: "citizen",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password
	_, err := svc.Login(ctx, &LoginInput{Email: "john@example.com", Password: "wrong-password", Role: "citizen"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	// Role mismatch
	_, err = svc.Login(ctx, &LoginInput{Email: "john@example.com", Password: "password123", Role: "collector"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("role mismatch: got %v, want ErrInvalidCredentials", err)
	}

	// Unknown account
	_, err = svc.Login(ctx, &LoginInput{Email: "ghost@example.com", Password: "password123", Role: "citizen"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown account: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		Name: "Bad Role", Email: "bad@example.com", Password: "password123", Role: "admin",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("bad role: got %v, want ErrInvalidRole", err)
	}

	_, err = svc.Register(ctx, &RegisterInput{
		Name: "Short Pass", Email: "short@example.com", Password: "short", Role: "citizen",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password: got %v, want ErrWeakPassword", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Name: "John Citizen", Email: "john@example.com", Password: "password123", Role: "citizen",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == result.RefreshToken {
		t.Error("refresh should rotate the refresh token")
	}

	// The old token is revoked after rotation
	_, err = svc.RefreshToken(ctx, result.RefreshToken)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("reused token: got %v, want ErrTokenRevoked", err)
	}

	// The new token still works
	if _, err := svc.RefreshToken(ctx, refreshed.RefreshToken); err != nil {
		t.Errorf("rotated token should work: %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Name: "John Citizen", Email: "john@example.com", Password: "password123", Role: "citizen",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(ctx, result.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	_, err = svc.RefreshToken(ctx, result.RefreshToken)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("after logout: got %v, want ErrTokenRevoked", err)
	}
}

func TestResetPasswordWithValidToken(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Name: "John Citizen", Email: "john@example.com", Password: "password123", Role: "citizen",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resetToken, err := svc.RequestPasswordReset(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("reset request failed: %v", err)
	}
	if resetToken == "" {
		t.Fatal("reset request should issue a token for a known account")
	}

	if err := svc.ResetPassword(ctx, resetToken, "new-password-123"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	// Old password no longer works
	_, err = svc.Login(ctx, &LoginInput{Email: "john@example.com", Password: "password123", Role: "citizen"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password: got %v, want ErrInvalidCredentials", err)
	}

	// New password does
	if _, err := svc.Login(ctx, &LoginInput{Email: "john@example.com", Password: "new-password-123", Role: "citizen"}); err != nil {
		t.Errorf("new password login failed: %v", err)
	}

	// Existing sessions were revoked
	_, err = svc.RefreshToken(ctx, result.RefreshToken)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("old session: got %v, want ErrTokenRevoked", err)
	}

	// The token is single use
	err = svc.ResetPassword(ctx, resetToken, "another-password-456")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("reused token: got %v, want ErrInvalidResetToken", err)
	}
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Name: "Victim User", Email: "victim@example.com", Password: "password123", Role: "citizen",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Knowing the email alone must not be enough to change credentials
	err := svc.ResetPassword(ctx, "victim@example.com", "attacker-chosen-pw")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("email as token: got %v, want ErrInvalidResetToken", err)
	}
	err = svc.ResetPassword(ctx, "made-up-token", "attacker-chosen-pw")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("unknown token: got %v, want ErrInvalidResetToken", err)
	}

	// The account still logs in with its original password only
	if _, err := svc.Login(ctx, &LoginInput{Email: "victim@example.com", Password: "password123", Role: "citizen"}); err != nil {
		t.Errorf("original password login failed: %v", err)
	}
	_, err = svc.Login(ctx, &LoginInput{Email: "victim@example.com", Password: "attacker-chosen-pw", Role: "citizen"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("attacker password: got %v, want ErrInvalidCredentials", err)
	}

	// Unknown emails are indistinguishable from known ones on request
	token, err := svc.RequestPasswordReset(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("reset request for unknown email errored: %v", err)
	}
	if token != "" {
		t.Error("unknown email should not be issued a reset token")
	}
}
