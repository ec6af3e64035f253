package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zion-platform/zion-sync/internal/domain/notification"
)

// Notifications returns the caller's notification list, newest first.
func (c *Client) Notifications(ctx context.Context, token string) ([]notification.Notification, error) {
	var list []notification.Notification
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/notifications",
		bearer:   token,
		out:      &list,
		fallback: "Failed to load notifications",
	})
	if err != nil {
		return nil, err
	}

	for _, n := range list {
		if n.ID == "" {
			return nil, &Error{
				StatusCode: http.StatusOK,
				Message:    "unexpected notification shape",
			}
		}
	}

	return list, nil
}

// UnreadCount returns the server-side unread counter.
func (c *Client) UnreadCount(ctx context.Context, token string) (int, error) {
	var resp struct {
		UnreadCount int `json:"unreadCount"`
	}
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/notifications/unread/count",
		bearer:   token,
		out:      &resp,
		fallback: "Failed to load unread count",
	})
	if err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// MarkRead marks one notification as read.
func (c *Client) MarkRead(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/notifications/" + url.PathEscape(id) + "/read",
		bearer:   token,
		body:     struct{}{},
		fallback: "Failed to mark notification as read",
	})
}

// MarkAllRead marks every notification as read.
func (c *Client) MarkAllRead(ctx context.Context, token string) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/notifications/all/read",
		bearer:   token,
		body:     struct{}{},
		fallback: "Failed to mark notifications as read",
	})
}

// Delete removes one notification.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/notifications/" + url.PathEscape(id),
		bearer:   token,
		fallback: "Failed to delete notification",
	})
}

// ClearAll removes every notification.
func (c *Client) ClearAll(ctx context.Context, token string) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/notifications/all/clear",
		bearer:   token,
		fallback: "Failed to clear notifications",
	})
}

// SendTestPush asks the backend to deliver a test push to the caller's
// registered devices and returns the backend acknowledgement message.
func (c *Client) SendTestPush(ctx context.Context, token string, payload notification.TestPush) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/notifications/test/push",
		bearer:   token,
		body:     payload,
		out:      &resp,
		fallback: "Failed to send test push",
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
