package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/startailors/tailorshop/internal/shop"
)

// Claims mirrors the payload the backend signs into its tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// User projects the claims onto the operator model.
func (c Claims) User() shop.User {
	return shop.User{ID: c.UserID, Username: c.Username, Role: c.Role}
}

// Expired reports whether the token carries an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// ParseClaims decodes token claims without checking the signature. The
// backend remains the only verifier; this only reads what it issued.
func ParseClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, errors.New("session: empty token")
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
