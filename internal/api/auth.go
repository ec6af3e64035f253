package api

import (
	"context"
	"net/http"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/token"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string          `json:"_id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
		Role  domainauth.Role `json:"role"`
	} `json:"user"`
}

// Login authenticates with email and password and returns a session
// assembled from the response. When the user object omits the id, the
// id embedded in the token claims is used instead.
func (c *Client) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     loginRequest{Email: email, Password: password},
		out:      &resp,
		fallback: "Login failed",
	})
	if err != nil {
		return domainauth.Session{}, err
	}

	if resp.Token == "" {
		return domainauth.Session{}, &Error{
			StatusCode: http.StatusOK,
			Message:    "no token received from server",
		}
	}

	userID := resp.User.ID
	if userID == "" {
		if claims, derr := token.Decode(resp.Token); derr == nil {
			userID = claims.UserID
		}
	}

	sess := domainauth.Session{
		UserID: userID,
		Name:   resp.User.Name,
		Email:  resp.User.Email,
		Token:  resp.Token,
		Role:   resp.User.Role,
	}
	if verr := sess.Validate(); verr != nil {
		return domainauth.Session{}, &Error{
			StatusCode: http.StatusOK,
			Message:    "unexpected login response shape",
		}
	}

	return sess, nil
}
