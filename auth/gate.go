// Package auth file: auth/gate.go
package auth

import (
	"sync"

	"catering-admin/logger"
	"catering-admin/models"
)

// State is the auth gate lifecycle state.
type State int

const (
	Initializing State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Gate is the single source of truth for "who is logged in" during one
// request. It starts Initializing until Init has read the store.
type Gate struct {
	mu    sync.RWMutex
	store Store
	state State
	user  *models.Session
	once  sync.Once
}

// NewGate returns a gate in the Initializing state.
func NewGate(store Store) *Gate {
	return &Gate{store: store, state: Initializing}
}

// Init reads the store once. A store error leaves the gate Unauthenticated.
func (g *Gate) Init() {
	g.once.Do(func() {
		s, err := g.store.Load()
		if err != nil {
			logger.Warn.Printf("[Gate.Init] Session store error, continuing as guest: %v", err)
		}

		g.mu.Lock()
		defer g.mu.Unlock()
		g.setLocked(s)
	})
}

// CurrentUser returns the logged-in admin or nil.
func (g *Gate) CurrentUser() *models.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.user == nil {
		return nil
	}
	u := *g.user
	return &u
}

// IsInitializing reports whether the store has not been read yet.
func (g *Gate) IsInitializing() bool {
	return g.State() == Initializing
}

// State returns the current lifecycle state.
func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// SetCurrentUser persists s (or clears the store for nil) and then switches state.
// The in-memory state only changes once the store accepted the write.
func (g *Gate) SetCurrentUser(s *models.Session) error {
	var err error
	if s == nil {
		err = g.store.Clear()
	} else {
		err = g.store.Save(*s)
	}
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.setLocked(s)
	return nil
}

// Logout clears the stored session. The gate is Unauthenticated afterwards
// even when the store write fails.
func (g *Gate) Logout() error {
	err := g.store.Clear()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.setLocked(nil)
	return err
}

func (g *Gate) setLocked(s *models.Session) {
	if s == nil {
		g.user = nil
		g.state = Unauthenticated
		return
	}
	u := *s
	g.user = &u
	g.state = Authenticated
}
