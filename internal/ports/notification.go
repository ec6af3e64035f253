package ports

import (
	"context"

	"github.com/zion-platform/zion-sync/internal/domain/notification"
)

// NotificationAPI is the backend surface the notification syncer drives.
// The bearer token of the active session authenticates every call.
type NotificationAPI interface {
	// Notifications returns the full notification list, newest first.
	Notifications(ctx context.Context, token string) ([]notification.Notification, error)

	// UnreadCount returns the server-side unread counter.
	UnreadCount(ctx context.Context, token string) (int, error)

	// MarkRead marks one notification as read.
	MarkRead(ctx context.Context, token, id string) error

	// MarkAllRead marks every notification as read.
	MarkAllRead(ctx context.Context, token string) error

	// Delete removes one notification.
	Delete(ctx context.Context, token, id string) error

	// ClearAll removes every notification.
	ClearAll(ctx context.Context, token string) error

	// SendTestPush asks the backend to deliver a test push to the
	// registered devices and returns the backend acknowledgement.
	SendTestPush(ctx context.Context, token string, payload notification.TestPush) (string, error)
}

// Confirmer asks the user to approve a destructive action. Hosts bridge
// this to their dialog surface; the daemon auto-approves.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) bool
}
