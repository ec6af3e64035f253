// Package ports defines interfaces (hexagonal ports) for session, push,
// and notification behavior. Implementations live in internal/adapters
// and internal/api; orchestration in internal/session, internal/push,
// and internal/notify.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore.Load when no usable
// session record exists. Malformed records count as absent.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists the single local session record.
type SessionStore interface {
	// Load returns the stored session, or ErrSessionNotFound when the
	// record is absent or malformed.
	Load(ctx context.Context) (domainauth.Session, error)

	// Save atomically replaces the stored session.
	Save(ctx context.Context, sess domainauth.Session) error

	// Clear removes the stored session. Clearing an absent record is
	// not an error.
	Clear(ctx context.Context) error
}
