// Package token decodes bearer-token claims without verifying signatures.
// The engine only needs the expiry embedded in the token to schedule
// proactive logout; the backend remains the authority on validity.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode indicates the token could not be structurally decoded.
// Callers treat a decode failure the same as an already-expired token.
var ErrDecode = errors.New("decode token")

// Claims holds the subset of token claims the engine acts on.
type Claims struct {
	// Subject is the sub claim, when present.
	Subject string
	// UserID is the platform user id. The backend embeds it as
	// user._id or _id; sub is the fallback.
	UserID string
	// ExpiresAt is the token expiry. Zero when the token carries no
	// exp claim.
	ExpiresAt time.Time
}

// HasExpiry returns true if the token carried an exp claim.
func (c Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// ExpiresIn returns the remaining lifetime relative to now. Tokens
// without an expiry report zero remaining lifetime.
func (c Claims) ExpiresIn(now time.Time) time.Duration {
	if !c.HasExpiry() {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// Decode extracts claims from a compact JWT without signature
// verification. Malformed tokens return an error wrapping ErrDecode.
func Decode(raw string) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	out := Claims{}

	sub, err := claims.GetSubject()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: subject claim: %w", ErrDecode, err)
	}
	out.Subject = sub
	out.UserID = userIDClaim(claims, sub)

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: exp claim: %w", ErrDecode, err)
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}

func userIDClaim(claims jwt.MapClaims, sub string) string {
	if user, ok := claims["user"].(map[string]any); ok {
		if id, ok := user["_id"].(string); ok && id != "" {
			return id
		}
	}
	if id, ok := claims["_id"].(string); ok && id != "" {
		return id
	}
	return sub
}
