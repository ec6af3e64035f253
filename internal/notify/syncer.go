// Package notify keeps local notification state (list + unread counter)
// eventually consistent with the backend. A poll loop and foreground
// transitions drive the unread counter; mutations mirror the server
// outcome into local state.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/zion-platform/zion-sync/internal/appstate"
	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/domain/notification"
	"github.com/zion-platform/zion-sync/internal/ports"
)

const defaultPollInterval = 30 * time.Second

// ErrNoSession is returned by mutations when no session is active.
var ErrNoSession = errors.New("no active session")

// ErrDeclined is returned by ClearAll when the confirmer rejects the
// action. Nothing was sent to the backend.
var ErrDeclined = errors.New("clear all declined")

// SessionSource provides the active session. *session.Manager
// implements it.
type SessionSource interface {
	Current() (domainauth.Session, bool)
}

// Options contains configuration for the syncer.
type Options struct {
	// API is the backend notification surface. Required.
	API ports.NotificationAPI

	// Sessions provides the active session. Required.
	Sessions SessionSource

	// Confirm guards ClearAll. Optional; nil auto-approves.
	Confirm ports.Confirmer

	// Foreground triggers an unread refresh on return to foreground.
	// Optional.
	Foreground *appstate.Monitor

	// PollInterval is the unread poll cadence. Defaults to 30s.
	PollInterval time.Duration

	// Logger for sync outcomes. Optional.
	Logger *slog.Logger
}

// Syncer holds the local notification state and drives it toward the
// backend's. All methods are safe for concurrent use.
type Syncer struct {
	api          ports.NotificationAPI
	sessions     SessionSource
	confirm      ports.Confirmer
	foreground   *appstate.Monitor
	pollInterval time.Duration
	logger       *slog.Logger

	group singleflight.Group

	mu            sync.Mutex
	notifications []notification.Notification
	unread        int
	onUnread      []func(int)
}

// New creates a notification syncer.
func New(opts Options) (*Syncer, error) {
	if opts.API == nil {
		return nil, errors.New("notify: API is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("notify: session source is required")
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Syncer{
		api:          opts.API,
		sessions:     opts.Sessions,
		confirm:      opts.Confirm,
		foreground:   opts.Foreground,
		pollInterval: interval,
		logger:       logger.With("component", "notification_syncer"),
	}, nil
}

// MustNew creates a notification syncer and panics on invalid options.
func MustNew(opts Options) *Syncer {
	s, err := New(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// OnUnreadChange registers a listener invoked whenever the unread
// counter changes value.
func (s *Syncer) OnUnreadChange(fn func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUnread = append(s.onUnread, fn)
}

// Unread returns the current unread counter.
func (s *Syncer) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Notifications returns a snapshot of the local notification list.
func (s *Syncer) Notifications() []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notification.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Recent returns a snapshot of the n most recent notifications.
func (s *Syncer) Recent(n int) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.notifications) {
		n = len(s.notifications)
	}
	out := make([]notification.Notification, n)
	copy(out, s.notifications[:n])
	return out
}

// RefreshUnreadCount reconciles the unread counter with the backend
// and returns the resulting value. It never fails: with no active
// session or on any backend error the counter degrades to zero.
// Concurrent refreshes collapse into one upstream call.
func (s *Syncer) RefreshUnreadCount(ctx context.Context) int {
	v, _, _ := s.group.Do("unread", func() (any, error) {
		sess, ok := s.sessions.Current()
		if !ok {
			return s.setUnread(0), nil
		}

		count, err := s.api.UnreadCount(ctx, sess.Token)
		if err != nil {
			s.logger.DebugContext(ctx, "unread count refresh failed", "error", err)
			return s.setUnread(0), nil
		}
		return s.setUnread(count), nil
	})
	count, _ := v.(int)
	return count
}

// FetchNotifications loads the full list from the backend and replaces
// the local copy. On failure the local list is left untouched.
func (s *Syncer) FetchNotifications(ctx context.Context) ([]notification.Notification, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, ErrNoSession
	}

	list, err := s.api.Notifications(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}

	s.mu.Lock()
	s.notifications = list
	s.mu.Unlock()

	return s.Notifications(), nil
}

// MarkRead marks one notification as read on the backend and mirrors
// the outcome locally, then reconciles the unread counter.
func (s *Syncer) MarkRead(ctx context.Context, id string) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return ErrNoSession
	}

	if err := s.api.MarkRead(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
		}
	}
	s.mu.Unlock()

	s.RefreshUnreadCount(ctx)
	return nil
}

// MarkAllRead marks every notification as read and zeroes the counter.
func (s *Syncer) MarkAllRead(ctx context.Context) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return ErrNoSession
	}

	if err := s.api.MarkAllRead(ctx, sess.Token); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}

	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.mu.Unlock()
	s.setUnread(0)

	return nil
}

// Delete removes one notification on the backend, drops it locally,
// and reconciles the unread counter.
func (s *Syncer) Delete(ctx context.Context, id string) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return ErrNoSession
	}

	if err := s.api.Delete(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	s.mu.Lock()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
	s.mu.Unlock()

	s.RefreshUnreadCount(ctx)
	return nil
}

// ClearAll removes every notification after the confirmer approves.
// A declined confirmation returns ErrDeclined without touching the
// backend.
func (s *Syncer) ClearAll(ctx context.Context) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return ErrNoSession
	}

	if s.confirm != nil && !s.confirm.Confirm(ctx, "Clear all notifications", "Delete all notifications? This cannot be undone.") {
		return ErrDeclined
	}

	if err := s.api.ClearAll(ctx, sess.Token); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	s.mu.Lock()
	s.notifications = nil
	s.mu.Unlock()
	s.setUnread(0)

	return nil
}

// SendTestPush asks the backend to deliver a test push and returns the
// acknowledgement message.
func (s *Syncer) SendTestPush(ctx context.Context, payload notification.TestPush) (string, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return "", ErrNoSession
	}

	msg, err := s.api.SendTestPush(ctx, sess.Token, payload)
	if err != nil {
		return "", fmt.Errorf("send test push: %w", err)
	}
	return msg, nil
}

// Reset drops all local state. Wired to session loss so a logged-out
// engine shows no badge.
func (s *Syncer) Reset() {
	s.mu.Lock()
	s.notifications = nil
	s.mu.Unlock()
	s.setUnread(0)
}

// Run polls the unread counter until ctx is canceled: once immediately,
// then on every tick, plus whenever the app returns to the foreground.
// Ticks without an active session skip the backend and keep the counter
// at zero.
func (s *Syncer) Run(ctx context.Context) error {
	if s.foreground != nil {
		sub := s.foreground.Subscribe(func() {
			s.RefreshUnreadCount(ctx)
		})
		defer sub.Cancel()
	}

	s.RefreshUnreadCount(ctx)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "notification syncer stopping")
			return nil
		case <-ticker.C:
			s.RefreshUnreadCount(ctx)
		}
	}
}

// setUnread stores the counter and fires listeners on change. Returns
// the stored value.
func (s *Syncer) setUnread(count int) int {
	s.mu.Lock()
	changed := s.unread != count
	s.unread = count
	listeners := make([]func(int), len(s.onUnread))
	copy(listeners, s.onUnread)
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(count)
		}
	}
	return count
}
