package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/harbor-labs/docflow-core/internal/core/ports/driven"
)

// Ensure Adapter implements AuthAdapter
var _ driven.AuthAdapter = (*Adapter)(nil)

// apiClaims carry the authenticated client identity inside a JWT
type apiClaims struct {
	jwt.RegisteredClaims
}

// Adapter handles API authentication using a bcrypt-hashed API key and JWT
// bearer tokens.
type Adapter struct {
	apiKeyHash []byte
	jwtSecret  []byte
	tokenTTL   time.Duration
}

// NewAdapter creates an auth adapter. apiKeyHash is the bcrypt hash of the
// accepted API key; jwtSecret signs issued tokens.
func NewAdapter(apiKeyHash, jwtSecret string, tokenTTL time.Duration) *Adapter {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Adapter{
		apiKeyHash: []byte(apiKeyHash),
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
	}
}

// HashKey generates a bcrypt hash for an API key, for configuration setup
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyKey checks a plaintext API key against the configured hash
func (a *Adapter) VerifyKey(key string) bool {
	if len(a.apiKeyHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.apiKeyHash, []byte(key)) == nil
}

// GenerateToken issues a signed JWT for an authenticated client
func (a *Adapter) GenerateToken(subject string) (string, error) {
	now := time.Now()
	claims := apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken verifies a JWT and returns its subject
func (a *Adapter) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &apiClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*apiClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}
