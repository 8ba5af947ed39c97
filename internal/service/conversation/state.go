package conversation

import (
	"sync"
	"time"
)

// State is the pending-context slot of one conversation session.
type State string

const (
	StateNone         State = "none"
	StateAwaitingNote State = "awaiting_note_content"
)

// DefaultSession is used for clients that do not identify a session. All such
// clients share one conversation, which limits the system to a single
// concurrent dialog for them.
const DefaultSession = "default"

type entry struct {
	state   State
	touched time.Time
}

// Manager holds at most one pending state per session. Reads consume nothing;
// a pending state survives until the next utterance of that session clears it,
// the orchestrator force-clears it after a failure, or the TTL runs out.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]entry
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]entry),
	}
}

func (m *Manager) Get(sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return StateNone
	}
	if m.ttl > 0 && m.now().Sub(e.touched) > m.ttl {
		// Abandoned dictation, drop it silently.
		delete(m.sessions, sessionID)
		return StateNone
	}
	return e.state
}

func (m *Manager) SetAwaitingNote(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = entry{state: StateAwaitingNote, touched: m.now()}
}

func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
