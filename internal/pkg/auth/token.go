// internal/pkg/auth/token.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned when the stored bearer token has expired
var ErrTokenExpired = fmt.Errorf("bearer token expired")

// Claims represents the claims the client cares about in a bearer token
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Inspect parses a bearer token without verifying its signature.
// The client never holds the signing secret; verification is the
// server's job. Inspection only answers "is this token still usable",
// so an obviously expired token is rejected before a round-trip.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// CheckUsable reports whether a stored token is still worth attaching
// to a request. Unparseable tokens pass through: the server decides.
func CheckUsable(tokenString string, now time.Time) error {
	claims, err := Inspect(tokenString)
	if err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

// BearerHeader formats a token for the Authorization header
func BearerHeader(tokenString string) string {
	return "Bearer " + tokenString
}

// ExtractTokenFromHeader extracts a bearer token from an Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
