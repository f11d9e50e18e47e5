package domain

import "time"

// User is the authenticated account as returned by the server.
type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Username    string         `json:"username"`
	CreatedAt   time.Time      `json:"created_at"`
	LastActive  *time.Time     `json:"last_active,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}
