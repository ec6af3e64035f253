// Package api implements the REST client for the Zion backend. It is
// the single place that knows URL paths, auth headers, and the error
// body contract; the rest of the engine works with domain types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Options contains configuration for the backend client.
type Options struct {
	// BaseURL is the API root, e.g. "https://zion.example.com/api".
	BaseURL string

	// HTTPClient is the transport to use. Defaults to a client with a
	// 15s timeout.
	HTTPClient *http.Client

	// Logger for request failures. Optional.
	Logger *slog.Logger
}

// Client is an HTTP client for the Zion backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// New creates a backend client. BaseURL is required.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("api: base URL is required")
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpc:   httpc,
		logger:  logger.With("component", "api_client"),
	}, nil
}

// MustNew creates a backend client and panics on invalid options.
func MustNew(opts Options) *Client {
	c, err := New(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// request describes one backend call for do.
type request struct {
	method string
	path   string

	// bearer is sent as "Authorization: Bearer <token>" when set.
	bearer string
	// rawAuth is sent as "x-auth-token: <token>" when set. The push
	// token route authenticates this way; every other route uses the
	// bearer form.
	rawAuth string

	body any
	out  any

	// fallback is the error message used when a failure response body
	// yields none.
	fallback string
}

// do executes a request and decodes the response into req.out.
// Non-2xx responses become *Error; transport and decode failures are
// returned wrapped.
func (c *Client) do(ctx context.Context, req request) error {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearer)
	}
	if req.rawAuth != "" {
		httpReq.Header.Set("x-auth-token", req.rawAuth)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("close response body failed", "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(data, req.fallback),
		}
	}

	if req.out != nil {
		if err := json.Unmarshal(data, req.out); err != nil {
			return &Error{
				StatusCode: resp.StatusCode,
				Message:    "unexpected response shape",
			}
		}
	}

	return nil
}

// extractErrorMessage pulls a human-readable message from a failure
// body. The backend is inconsistent about the field name, so the
// lookup order is error, msg, message, then the raw body. The raw body
// is used only when it is short and not JSON-shaped; anything longer
// than 256 bytes or starting with "{" falls through to the
// per-operation fallback so an HTML error page or an unrecognized JSON
// payload never ends up in a user-facing message.
func extractErrorMessage(data []byte, fallback string) string {
	var body struct {
		Err     string `json:"error"`
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Err != "":
			return body.Err
		case body.Msg != "":
			return body.Msg
		case body.Message != "":
			return body.Message
		}
	}

	if text := strings.TrimSpace(string(data)); text != "" && len(text) <= 256 && !strings.HasPrefix(text, "{") {
		return text
	}
	if fallback != "" {
		return fallback
	}
	return "request failed"
}
