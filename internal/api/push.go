package api

import (
	"context"
	"net/http"
)

type pushTokenRequest struct {
	Token string `json:"token"`
}

// RegisterPushToken upserts the device push token for the session's
// user. Unlike every other route, this one authenticates with the
// x-auth-token header; the backend contract is kept as-is.
func (c *Client) RegisterPushToken(ctx context.Context, sessionToken, pushToken string) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/users/push-token",
		rawAuth:  sessionToken,
		body:     pushTokenRequest{Token: pushToken},
		fallback: "Failed to register push token",
	})
}
