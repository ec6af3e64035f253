package ports

import "context"

// PermissionGate requests platform notification permission from the
// user. Hosts bridge this to the OS prompt.
type PermissionGate interface {
	// RequestPermission returns true when notification delivery is
	// allowed. A denied prompt is not an error.
	RequestPermission(ctx context.Context) (bool, error)
}

// PushTokenProvider resolves the device push identifier for a project.
type PushTokenProvider interface {
	PushToken(ctx context.Context, projectID string) (string, error)
}

// PushAPI registers device push tokens with the backend.
type PushAPI interface {
	// RegisterPushToken upserts the device push token for the session's
	// user.
	RegisterPushToken(ctx context.Context, sessionToken, pushToken string) error
}
