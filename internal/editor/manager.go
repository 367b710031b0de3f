package editor

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"courseforge/internal/model"
)

var ErrSessionNotFound = errors.New("editing session not found")

// Manager holds in-memory editing sessions keyed by session id. All access
// to an Editor goes through With, so mutations on one session run to
// completion before the next one starts.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Editor
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Editor)}
}

// Open starts a session on the given document and returns its id.
func (m *Manager) Open(doc model.CourseDocument) string {
	id := uuid.New().String()
	m.mu.Lock()
	m.sessions[id] = New(doc)
	m.mu.Unlock()
	return id
}

// Close drops a session and its history.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// With runs fn against the session's editor under the manager lock.
func (m *Manager) With(id string, fn func(*Editor) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(e)
}
