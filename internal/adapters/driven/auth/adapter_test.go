package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

func testAdapter(t *testing.T) *Adapter {
	t.Helper()
	hash, err := HashKey("test-api-key")
	if err != nil {
		t.Fatalf("failed to hash key: %v", err)
	}
	return NewAdapter(hash, "test-secret", time.Hour)
}

func TestNewAdapter_DefaultTTL(t *testing.T) {
	adapter := NewAdapter("hash", "secret", 0)
	if adapter.tokenTTL != 24*time.Hour {
		t.Errorf("expected default TTL of 24h, got %v", adapter.tokenTTL)
	}
}

func TestHashKey(t *testing.T) {
	hash, err := HashKey("mykey")
	if err != nil {
		t.Fatalf("failed to hash key: %v", err)
	}
	if hash == "" {
		t.Error("expected non-empty hash")
	}
	if hash == "mykey" {
		t.Error("hash should not equal plaintext key")
	}
}

func TestVerifyKey_Correct(t *testing.T) {
	adapter := testAdapter(t)

	if !adapter.VerifyKey("test-api-key") {
		t.Error("expected key verification to succeed")
	}
}

func TestVerifyKey_Incorrect(t *testing.T) {
	adapter := testAdapter(t)

	if adapter.VerifyKey("wrong-key") {
		t.Error("expected key verification to fail for wrong key")
	}
}

func TestVerifyKey_NoHashConfigured(t *testing.T) {
	adapter := NewAdapter("", "secret", time.Hour)

	if adapter.VerifyKey("anything") {
		t.Error("expected verification to fail with no configured hash")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	adapter := testAdapter(t)

	token, err := adapter.GenerateToken("api-client")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	subject, err := adapter.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if subject != "api-client" {
		t.Errorf("expected subject api-client, got %s", subject)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	adapter := testAdapter(t)

	_, err := adapter.ValidateToken("not-a-token")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	adapter := testAdapter(t)
	other := NewAdapter("", "different-secret", time.Hour)

	token, err := adapter.GenerateToken("api-client")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	adapter := NewAdapter("", "test-secret", time.Hour)

	// Craft an expired token with the same secret
	now := time.Now()
	claims := apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "api-client",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := adapter.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	adapter := testAdapter(t)

	// Unsigned token must be rejected
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "api-client"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	if _, err := adapter.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unsigned token, got %v", err)
	}
}
