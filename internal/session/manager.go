// Package session owns the authenticated session lifecycle: restoring
// the persisted record at startup, scheduling proactive logout at token
// expiry, and fanning out state changes to listeners.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/ports"
	"github.com/zion-platform/zion-sync/internal/token"
)

// State is the lifecycle state of the local session.
type State string

const (
	// StateInitializing is the state before Restore has run.
	StateInitializing State = "initializing"
	// StateUnauthenticated means no usable session is held.
	StateUnauthenticated State = "unauthenticated"
	// StateAuthenticated means a session is held and its expiry timer
	// is armed.
	StateAuthenticated State = "authenticated"
)

// Reason describes what caused a state transition.
type Reason string

const (
	ReasonRestore Reason = "restore"
	ReasonLogin   Reason = "login"
	ReasonLogout  Reason = "logout"
	ReasonExpired Reason = "expired"
)

// Event is delivered to OnChange listeners on every state transition.
// Session is zero unless State is StateAuthenticated.
type Event struct {
	State   State
	Reason  Reason
	Session domainauth.Session
}

// ErrTokenExpired is returned by Login when the session token is
// already expired, carries no expiry, or cannot be decoded.
var ErrTokenExpired = errors.New("session token expired")

// Options contains configuration for the session manager.
type Options struct {
	// Store persists the session record. Required.
	Store ports.SessionStore

	// Logger for lifecycle events. Optional.
	Logger *slog.Logger

	// Now overrides the time source. Optional, used in tests.
	Now func() time.Time
}

// Manager is the session lifecycle state machine. All methods are safe
// for concurrent use.
type Manager struct {
	store  ports.SessionStore
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	state     State
	current   domainauth.Session
	timer     *time.Timer
	timerGen  uint64
	listeners []func(Event)
}

// New creates a session manager in the initializing state.
func New(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, errors.New("session: store is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Manager{
		store:  opts.Store,
		logger: logger.With("component", "session_manager"),
		now:    now,
		state:  StateInitializing,
	}, nil
}

// MustNew creates a session manager and panics on invalid options.
func MustNew(opts Options) *Manager {
	m, err := New(opts)
	if err != nil {
		panic(err)
	}
	return m
}

// OnChange registers a listener for state transitions. Listeners are
// invoked outside the manager lock, in registration order. Register
// before calling Restore.
func (m *Manager) OnChange(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the active session, if any.
func (m *Manager) Current() (domainauth.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return domainauth.Session{}, false
	}
	return m.current, true
}

// Restore loads the persisted session and resolves the initializing
// state. A missing or unreadable record, an undecodable token, or a
// past or missing expiry all resolve to unauthenticated; stale records
// are cleared from the store best-effort. Restore never fails, it
// returns the resulting state.
func (m *Manager) Restore(ctx context.Context) State {
	sess, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrSessionNotFound) {
			m.logger.WarnContext(ctx, "session restore failed", "error", err)
		}
		return m.transitionUnauthenticated(ReasonRestore)
	}

	claims, derr := token.Decode(sess.Token)
	if derr != nil || !claims.HasExpiry() || !claims.ExpiresAt.After(m.now()) {
		if derr != nil {
			m.logger.WarnContext(ctx, "restored session token undecodable", "error", derr)
		}
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.logger.WarnContext(ctx, "clear stale session failed", "error", cerr)
		}
		return m.transitionUnauthenticated(ReasonExpired)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.current = sess
	m.armTimerLocked(claims.ExpiresAt)
	listeners := m.listenersLocked()
	event := Event{State: StateAuthenticated, Reason: ReasonRestore, Session: sess}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "session restored",
		"user_id", sess.UserID,
		"expires_at", claims.ExpiresAt)
	notify(listeners, event)
	return StateAuthenticated
}

// Login persists the session, transitions to authenticated, and arms
// the expiry timer. The token must decode and carry a future expiry;
// otherwise ErrTokenExpired is returned and nothing changes. A store
// failure is returned and leaves the state unchanged.
func (m *Manager) Login(ctx context.Context, sess domainauth.Session) error {
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	claims, err := token.Decode(sess.Token)
	if err != nil {
		return fmt.Errorf("login: %w: %w", ErrTokenExpired, err)
	}
	if !claims.HasExpiry() || !claims.ExpiresAt.After(m.now()) {
		return fmt.Errorf("login: %w", ErrTokenExpired)
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("login: save session: %w", err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.current = sess
	m.armTimerLocked(claims.ExpiresAt)
	listeners := m.listenersLocked()
	event := Event{State: StateAuthenticated, Reason: ReasonLogin, Session: sess}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "session established",
		"user_id", sess.UserID,
		"role", string(sess.Role),
		"expires_at", claims.ExpiresAt)
	notify(listeners, event)
	return nil
}

// Logout drops the in-memory session, cancels the expiry timer, and
// clears the store. A store failure is logged; the in-memory state
// transitions regardless. Logging out while unauthenticated is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.logout(ctx, ReasonLogout)
}

func (m *Manager) logout(ctx context.Context, reason Reason) {
	m.mu.Lock()
	if m.state == StateUnauthenticated {
		m.mu.Unlock()
		return
	}
	m.state = StateUnauthenticated
	m.current = domainauth.Session{}
	m.stopTimerLocked()
	listeners := m.listenersLocked()
	event := Event{State: StateUnauthenticated, Reason: reason}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.WarnContext(ctx, "clear session failed", "error", err)
	}

	m.logger.InfoContext(ctx, "session ended", "reason", string(reason))
	notify(listeners, event)
}

// Close stops the expiry timer. The manager is not usable afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
}

// armTimerLocked replaces the expiry timer. The generation counter
// keeps a stale timer from ending a newer session.
func (m *Manager) armTimerLocked(expiresAt time.Time) {
	m.stopTimerLocked()
	m.timerGen++
	gen := m.timerGen
	m.timer = time.AfterFunc(expiresAt.Sub(m.now()), func() {
		m.expire(gen)
	})
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// expire is the timer callback. The generation check and the state
// transition happen under one lock so a timer that lost the race with
// a newer login cannot end that session.
func (m *Manager) expire(gen uint64) {
	ctx := context.Background()

	m.mu.Lock()
	if gen != m.timerGen || m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.state = StateUnauthenticated
	m.current = domainauth.Session{}
	m.stopTimerLocked()
	listeners := m.listenersLocked()
	event := Event{State: StateUnauthenticated, Reason: ReasonExpired}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.WarnContext(ctx, "clear session failed", "error", err)
	}

	m.logger.InfoContext(ctx, "session ended", "reason", string(ReasonExpired))
	notify(listeners, event)
}

func (m *Manager) transitionUnauthenticated(reason Reason) State {
	m.mu.Lock()
	m.state = StateUnauthenticated
	m.current = domainauth.Session{}
	m.stopTimerLocked()
	listeners := m.listenersLocked()
	event := Event{State: StateUnauthenticated, Reason: reason}
	m.mu.Unlock()

	notify(listeners, event)
	return StateUnauthenticated
}

func (m *Manager) listenersLocked() []func(Event) {
	out := make([]func(Event), len(m.listeners))
	copy(out, m.listeners)
	return out
}

func notify(listeners []func(Event), event Event) {
	for _, fn := range listeners {
		fn(event)
	}
}
