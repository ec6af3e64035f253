// Package notification contains domain-level types for user notifications.
// It is pure and free of transport/adapter concerns.
package notification

import (
	"fmt"
	"time"
)

// Category classifies a notification by the platform activity that
// produced it. Keep string form for wire transfer.
type Category string

const (
	CategoryMessage    Category = "message"
	CategoryAssignment Category = "assignment"
	CategoryQuiz       Category = "quiz"
	CategoryMaterial   Category = "material"
	CategorySubmission Category = "submission"
	CategoryGrade      Category = "grade"
	CategoryComment    Category = "comment"
	CategorySystem     Category = "system"
)

// Valid returns true if the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryMessage, CategoryAssignment, CategoryQuiz, CategoryMaterial,
		CategorySubmission, CategoryGrade, CategoryComment, CategorySystem:
		return true
	default:
		return false
	}
}

// Notification is a single backend notification record. The JSON shape
// matches the backend list response.
type Notification struct {
	ID        string    `json:"_id"`
	Category  Category  `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Read      bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// TestPush is the payload for a backend-initiated test push delivery.
// All fields are optional; the backend fills in defaults.
type TestPush struct {
	Title string         `json:"title,omitempty"`
	Body  string         `json:"body,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// RelativeTime renders the age of a timestamp the way notification rows
// display it: "just now", then whole minutes, hours, and days.
func RelativeTime(t, now time.Time) string {
	minutes := int(now.Sub(t).Minutes())
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}
