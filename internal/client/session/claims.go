package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID    any    `json:"user_id"`
	TokenType string `json:"token_type"`
}

// Claims is what the client can learn from an access token without the
// server's signing key.
type Claims struct {
	UserID    string
	TokenType string
	ExpiresAt time.Time
}

// ParseClaims decodes the payload of a JWT without verifying its signature.
// Verification is the server's job; the client only reads hints such as the
// expiry for display.
func ParseClaims(token string) (*Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	c := &Claims{TokenType: tc.TokenType}
	switch v := tc.UserID.(type) {
	case nil:
	case float64:
		c.UserID = fmt.Sprintf("%.0f", v)
	default:
		c.UserID = fmt.Sprint(v)
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

// ExpiresIn returns the time left before expiry, clamped at zero. ok is false
// when the token carries no expiry.
func (c *Claims) ExpiresIn(now time.Time) (left time.Duration, ok bool) {
	if c.ExpiresAt.IsZero() {
		return 0, false
	}
	return max(c.ExpiresAt.Sub(now), 0), true
}
