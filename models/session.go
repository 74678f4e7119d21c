// Package models defines data structures used across the application.
// File: models/session.go
package models

// ----------------------- session record -----------------------

// Session is the lightweight identity kept in the signed session cookie.
// It is a convenience cache for this app only, never an authorization token
// for another service.
type Session struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profile_picture,omitempty"`
}

// Initial returns the first letter of the username for avatar fallbacks.
func (s Session) Initial() string {
	for _, r := range s.Username {
		return string(r)
	}
	return "?"
}
