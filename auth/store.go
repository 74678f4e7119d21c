// Package auth holds the session store, the per-request auth gate and the
// credential check.
// File: auth/store.go
package auth

import (
	"encoding/json"
	"fmt"

	"catering-admin/logger"
	"catering-admin/models"

	"github.com/gin-contrib/sessions"
)

// SessionKey is the cookie-session key holding the serialized session record.
const SessionKey = "admin_session"

// Store persists the session record between requests.
type Store interface {
	Save(s models.Session) error
	// Load returns nil when no usable record exists.
	Load() (*models.Session, error)
	Clear() error
}

// CookieStore keeps the session record as JSON inside the signed cookie session.
type CookieStore struct {
	session sessions.Session
}

// NewCookieStore wraps the gin-contrib session of the current request.
func NewCookieStore(s sessions.Session) *CookieStore {
	return &CookieStore{session: s}
}

// Save writes the record and flushes the cookie before returning.
func (c *CookieStore) Save(s models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	c.session.Set(SessionKey, string(raw))
	if err := c.session.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored record. A corrupt record is cleared and treated as absent.
func (c *CookieStore) Load() (*models.Session, error) {
	raw, ok := c.session.Get(SessionKey).(string)
	if !ok || raw == "" {
		return nil, nil
	}

	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.ID == "" {
		logger.Warn.Printf("[CookieStore.Load] Discarding unreadable session record: %v", err)
		return nil, c.Clear()
	}
	return &s, nil
}

// Clear removes the record.
func (c *CookieStore) Clear() error {
	c.session.Delete(SessionKey)
	if err := c.session.Save(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
