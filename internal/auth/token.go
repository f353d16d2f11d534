// Package auth inspects bearer tokens issued by the Vendora service.
//
// The client never holds the signing secret, so tokens are parsed without
// verification: the only questions answered here are "who does this token
// claim to be" and "has it expired", so the CLI can prompt for a fresh login
// instead of burning a request that will come back 401.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims the Vendora service issues.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Peek decodes a token's claims without verifying its signature.
func Peek(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	return claims, nil
}

// Expired reports whether a token is past its expiry. Malformed tokens and
// tokens without an expiry count as expired, so callers always re-login
// rather than sending a request doomed to fail.
func Expired(tokenStr string) bool {
	claims, err := Peek(tokenStr)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
