// Package session derives the shopper's identity and role from the bearer
// token. Derivation is a pure read repeated on every access, so the
// reported role can never drift from the token actually in storage.
package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

// Derive decodes the token's claims without verifying its signature;
// verification happens server-side on every API call. Absent or malformed
// tokens yield nil, the anonymous session.
func Derive(token string) *domain.Session {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	sess := &domain.Session{Role: domain.RoleUser}
	if sub, ok := claims["sub"].(string); ok {
		sess.Subject = sub
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		sess.Role = domain.Role(role)
	}
	return sess
}
