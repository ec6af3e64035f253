// Package auth contains domain-level types for identity and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "errors"

// Role represents the platform role carried by a session.
// Keep string form for easy persistence and wire transfer.
type Role string

const (
	RoleStudent      Role = "student"
	RoleMediaManager Role = "media-manager"
	RoleInstructor   Role = "instructor"
)

// Valid returns true if the role is one of the known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleMediaManager, RoleInstructor:
		return true
	default:
		return false
	}
}

// DashboardRoute returns the post-login landing route for the role.
// Unknown or empty roles land on the generic dashboard.
func (r Role) DashboardRoute() string {
	switch r {
	case RoleStudent:
		return "/dashboard/student"
	case RoleMediaManager:
		return "/dashboard/mediaManager"
	case RoleInstructor:
		return "/dashboard/instructor"
	default:
		return "/dashboard"
	}
}

// Session is the client-held record for a logged-in identity. The JSON
// shape matches both the persisted session record and the user object of
// the backend login response.
type Session struct {
	UserID string `json:"_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Token  string `json:"token"`
	Role   Role   `json:"role"`
}

// Validate checks the fields a usable session must carry. Name is
// optional. Role is kept as-is even when unknown so that new backend
// roles degrade to the generic dashboard instead of failing login.
func (s Session) Validate() error {
	if s.UserID == "" {
		return errors.New("session user id is required")
	}
	if s.Email == "" {
		return errors.New("session email is required")
	}
	if s.Token == "" {
		return errors.New("session token is required")
	}
	return nil
}

// DashboardRoute returns the landing route for the session's role.
func (s Session) DashboardRoute() string {
	return s.Role.DashboardRoute()
}
