// Package testutil provides testing utilities and helpers for the zion
// sync engine.
package testutil

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/domain/notification"
)

const testSigningSecret = "testutil-signing-secret"

// SignedToken mints an HS256 token that expires at exp. The signature
// is valid but irrelevant; the engine never verifies it.
func SignedToken(t TestingTB, exp time.Time) string {
	t.Helper()
	return signClaims(t, jwt.MapClaims{
		"sub": "user-123",
		"exp": exp.Unix(),
	})
}

// SignedTokenWithoutExpiry mints an HS256 token without an exp claim.
func SignedTokenWithoutExpiry(t TestingTB) string {
	t.Helper()
	return signClaims(t, jwt.MapClaims{"sub": "user-123"})
}

// SignedTokenWithClaims mints an HS256 token with the given claims.
func SignedTokenWithClaims(t TestingTB, claims jwt.MapClaims) string {
	t.Helper()
	return signClaims(t, claims)
}

func signClaims(t TestingTB, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningSecret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return raw
}

// SessionBuilder provides a fluent interface for building sessions for
// testing.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession creates a SessionBuilder with sensible defaults and a
// token expiring at exp.
func NewSession(t TestingTB, exp time.Time) *SessionBuilder {
	t.Helper()
	return &SessionBuilder{
		sess: domainauth.Session{
			UserID: "user-123",
			Name:   "Ada",
			Email:  "ada@example.com",
			Token:  SignedToken(t, exp),
			Role:   domainauth.RoleStudent,
		},
	}
}

// WithToken overrides the session token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.sess.Token = token
	return b
}

// WithRole sets the session role.
func (b *SessionBuilder) WithRole(role domainauth.Role) *SessionBuilder {
	b.sess.Role = role
	return b
}

// WithUserID sets the session user id.
func (b *SessionBuilder) WithUserID(id string) *SessionBuilder {
	b.sess.UserID = id
	return b
}

// Build returns the session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}

// Notifications returns n unread notification fixtures, newest first.
func Notifications(n int, createdAt time.Time) []notification.Notification {
	out := make([]notification.Notification, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, notification.Notification{
			ID:        fmt.Sprintf("n%d", i+1),
			Category:  notification.CategorySystem,
			Title:     "Notification",
			Read:      false,
			CreatedAt: createdAt.Add(-time.Duration(i) * time.Minute),
		})
	}
	return out
}
