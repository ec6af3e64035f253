package push

import (
	"context"
	"errors"
)

// AutoGrant is a ports.PermissionGate that always allows delivery. The
// daemon uses it because there is no interactive prompt to bridge.
type AutoGrant struct{}

// RequestPermission always grants.
func (AutoGrant) RequestPermission(context.Context) (bool, error) { return true, nil }

// StaticProvider is a ports.PushTokenProvider backed by a fixed token,
// typically injected through configuration for daemon deployments.
type StaticProvider struct {
	Token string
}

// PushToken returns the configured token; an empty token is an error.
func (p StaticProvider) PushToken(context.Context, string) (string, error) {
	if p.Token == "" {
		return "", errors.New("push: no device token configured")
	}
	return p.Token, nil
}
