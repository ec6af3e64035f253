// Package push registers the device push token with the backend after
// a session becomes active. Registration is best-effort: the session is
// never blocked or ended by a push failure.
package push

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/ports"
)

// Options contains configuration for the registrar.
type Options struct {
	// API performs the push token upsert. Required.
	API ports.PushAPI

	// Permissions gates registration on the platform notification
	// permission. Required.
	Permissions ports.PermissionGate

	// Tokens resolves the device push identifier. Required.
	Tokens ports.PushTokenProvider

	// ProjectID is passed to the token provider.
	ProjectID string

	// Logger for registration outcomes. Optional.
	Logger *slog.Logger
}

// Registrar performs fire-and-forget push token registration.
type Registrar struct {
	api         ports.PushAPI
	permissions ports.PermissionGate
	tokens      ports.PushTokenProvider
	projectID   string
	logger      *slog.Logger
	group       singleflight.Group
}

// New creates a push registrar.
func New(opts Options) (*Registrar, error) {
	if opts.API == nil {
		return nil, errors.New("push: API is required")
	}
	if opts.Permissions == nil {
		return nil, errors.New("push: permission gate is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("push: token provider is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Registrar{
		api:         opts.API,
		permissions: opts.Permissions,
		tokens:      opts.Tokens,
		projectID:   opts.ProjectID,
		logger:      logger.With("component", "push_registrar"),
	}, nil
}

// MustNew creates a push registrar and panics on invalid options.
func MustNew(opts Options) *Registrar {
	r, err := New(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// Register requests permission, resolves the device push token, and
// upserts it for the session's user. Every failure path is logged and
// swallowed. Concurrent calls for the same session token collapse into
// one attempt.
func (r *Registrar) Register(ctx context.Context, sess domainauth.Session) {
	_, _, _ = r.group.Do(sess.Token, func() (any, error) {
		r.register(ctx, sess)
		return nil, nil
	})
}

func (r *Registrar) register(ctx context.Context, sess domainauth.Session) {
	granted, err := r.permissions.RequestPermission(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "notification permission request failed", "error", err)
		return
	}
	if !granted {
		r.logger.DebugContext(ctx, "notification permission denied, skipping push registration")
		return
	}

	pushToken, err := r.tokens.PushToken(ctx, r.projectID)
	if err != nil {
		r.logger.WarnContext(ctx, "resolve push token failed", "error", err)
		return
	}

	if err := r.api.RegisterPushToken(ctx, sess.Token, pushToken); err != nil {
		r.logger.WarnContext(ctx, "register push token failed",
			"user_id", sess.UserID,
			"error", err)
		return
	}

	r.logger.InfoContext(ctx, "push token registered", "user_id", sess.UserID)
}
