package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewIssuerDefaults(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
		validate      func(*testing.T, *Issuer)
	}{
		{
			name:          "both secrets set",
			accessSecret:  "access-secret-long-enough-for-hs256",
			refreshSecret: "refresh-secret-long-enough-for-hs256",
			validate: func(t *testing.T, i *Issuer) {
				if string(i.accessSecret) != "access-secret-long-enough-for-hs256" {
					t.Error("access secret not set correctly")
				}
				if string(i.refreshSecret) != "refresh-secret-long-enough-for-hs256" {
					t.Error("refresh secret not set correctly")
				}
				if i.accessTTL != 15*time.Minute {
					t.Errorf("expected default access TTL 15m, got %v", i.accessTTL)
				}
				if i.refreshTTL != 7*24*time.Hour {
					t.Errorf("expected default refresh TTL 7d, got %v", i.refreshTTL)
				}
			},
		},
		{
			name:          "refresh secret falls back to access secret",
			accessSecret:  "only-secret",
			refreshSecret: "",
			validate: func(t *testing.T, i *Issuer) {
				if string(i.refreshSecret) != "only-secret" {
					t.Errorf("expected refresh secret fallback, got %q", i.refreshSecret)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := NewIssuer(tt.accessSecret, tt.refreshSecret, 0, 0)
			if tt.validate != nil {
				tt.validate(t, i)
			}
		})
	}
}

func TestIssuePair(t *testing.T) {
	i := NewIssuer("access-secret-long-enough", "refresh-secret-long-enough", 15*time.Minute, 7*24*time.Hour)

	pair, err := i.Issue("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parts := strings.Split(pair.AccessToken, "."); len(parts) != 3 {
		t.Errorf("expected 3 JWT parts in access token, got %d", len(parts))
	}
	if parts := strings.Split(pair.RefreshToken, "."); len(parts) != 3 {
		t.Errorf("expected 3 JWT parts in refresh token, got %d", len(parts))
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens should not be identical")
	}
}

func TestIssueClaims(t *testing.T) {
	i := NewIssuer("access-secret-long-enough", "refresh-secret-long-enough", 15*time.Minute, 7*24*time.Hour)

	pair, err := i.Issue("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	claims, err := i.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("failed to verify access token: %v", err)
	}

	if claims.Subject != "user-123" {
		t.Errorf("expected subject user-123, got %s", claims.Subject)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email user@example.com, got %s", claims.Email)
	}
	if claims.Issuer != "taskvault" {
		t.Errorf("expected issuer taskvault, got %s", claims.Issuer)
	}

	if claims.ExpiresAt == nil {
		t.Fatal("expected ExpiresAt to be set")
	}
	expected := time.Now().Add(15 * time.Minute)
	if claims.ExpiresAt.Time.Before(expected.Add(-5*time.Second)) ||
		claims.ExpiresAt.Time.After(expected.Add(5*time.Second)) {
		t.Errorf("expected expiry around %v, got %v", expected, claims.ExpiresAt.Time)
	}

	refreshClaims, err := i.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("failed to verify refresh token: %v", err)
	}
	if refreshClaims.Subject != "user-123" {
		t.Errorf("expected refresh subject user-123, got %s", refreshClaims.Subject)
	}
}

func TestVerifyAccess(t *testing.T) {
	i := NewIssuer("access-secret-long-enough", "refresh-secret-long-enough", 15*time.Minute, 7*24*time.Hour)
	pair, _ := i.Issue("user-123", "user@example.com")

	other := NewIssuer("different-secret-entirely", "different-refresh", 15*time.Minute, 7*24*time.Hour)
	foreign, _ := other.Issue("user-456", "other@example.com")

	tests := []struct {
		name        string
		raw         string
		expectError bool
	}{
		{name: "valid token", raw: pair.AccessToken},
		{name: "wrong secret", raw: foreign.AccessToken, expectError: true},
		{name: "refresh token against access secret", raw: pair.RefreshToken, expectError: true},
		{name: "garbage", raw: "this-is-not-a-jwt", expectError: true},
		{name: "empty", raw: "", expectError: true},
		{name: "only dots", raw: "...", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := i.VerifyAccess(tt.raw)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.Subject != "user-123" {
				t.Errorf("expected subject user-123, got %s", claims.Subject)
			}
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	i := NewIssuer("access-secret-long-enough", "refresh-secret-long-enough", 15*time.Minute, 7*24*time.Hour)

	claims := Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "taskvault",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expired, err := token.SignedString(i.accessSecret)
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := i.VerifyAccess(expired); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestDecodeReadsExpiryWithoutVerification(t *testing.T) {
	i := NewIssuer("access-secret-long-enough", "refresh-secret-long-enough", 15*time.Minute, 7*24*time.Hour)
	other := NewIssuer("totally-different-secret", "", 15*time.Minute, 7*24*time.Hour)

	// Signed with a foreign secret: Verify would reject it, Decode still
	// reads the claims.
	foreign, _ := other.Issue("user-999", "someone@example.com")

	if _, err := i.VerifyAccess(foreign.AccessToken); err == nil {
		t.Fatal("expected verification failure for foreign token")
	}

	claims, err := i.Decode(foreign.AccessToken)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.Subject != "user-999" {
		t.Errorf("expected subject user-999, got %s", claims.Subject)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		t.Error("expected a future expiry from decoded claims")
	}

	if _, err := i.Decode("not-a-token"); err == nil {
		t.Error("expected error decoding garbage")
	}
}
