// Package session maps signed session tokens to live per-session apps. Each
// session's bus and models are single-threaded; the manager serializes all
// access to one session behind its own lock.
package session

import (
	"sync"

	"github.com/example/storefront/internal/app"
)

// Factory builds the app for a new session, typically wiring the bus,
// remote store and audit observer, and loading the catalog.
type Factory func(sessionID string) (*app.App, error)

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	factory  Factory
}

type entry struct {
	mu  sync.Mutex
	app *app.App
}

func NewManager(factory Factory) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		factory:  factory,
	}
}

// Do runs fn with the session's app, creating it on first use. Calls for the
// same session run one at a time; calls for different sessions do not block
// each other.
func (m *Manager) Do(sessionID string, fn func(*app.App) error) error {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	if !ok {
		e = &entry{}
		m.sessions[sessionID] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.app == nil {
		a, err := m.factory(sessionID)
		if err != nil {
			m.mu.Lock()
			delete(m.sessions, sessionID)
			m.mu.Unlock()
			return err
		}
		e.app = a
	}
	return fn(e.app)
}

// Drop discards a session's app, if present.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
