package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/o1egl/paseto"
)

const (
	AccessTokenExpiry  = 24 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// ErrTokenExpired is returned for a token that decrypts fine but whose
// expiry has passed.
var ErrTokenExpired = errors.New("token expired")

// TokenClaims is the payload carried inside a session token.
type TokenClaims struct {
	UserID string    `json:"userId"`
	Role   string    `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// GetSymmetricKey reads the PASETO key from the environment. The v2 local
// mode requires exactly 32 bytes; anything else is a deployment error.
func GetSymmetricKey() []byte {
	key := os.Getenv("SYMMETRIC_KEY")
	if len(key) != 32 {
		log.Fatalf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(key))
	}
	return []byte(key)
}

// GenerateTokens issues the access/refresh pair for a freshly authenticated
// account.
func GenerateTokens(userID, role string) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(userID, role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = encryptClaims(userID, role, RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// GenerateAccessToken issues a fresh access token, at login and again on
// each refresh.
func GenerateAccessToken(userID, role string) (string, error) {
	return encryptClaims(userID, role, AccessTokenExpiry)
}

func encryptClaims(userID, role string, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Expiry: time.Now().Add(ttl),
	}
	token, err := paseto.NewV2().Encrypt(GetSymmetricKey(), claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token: %w", err)
	}
	return token, nil
}

// ValidateToken decrypts the token and checks its expiry. Role gating does
// not happen here: the system has a single admin role and admin-only routes
// are enforced by the route middleware.
func ValidateToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, GetSymmetricKey(), &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	if time.Now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}
	return &claims, nil
}
