package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xunop/e-library/internal/log"
)

// DefaultIdleTimeout is how long a session survives without a request.
const DefaultIdleTimeout = 24 * time.Hour

const sweepInterval = time.Minute

// Manager keeps the live sessions of the process. Nothing is persisted, a
// restart ends every session. Sessions unused for longer than the idle
// timeout are dropped.
type Manager struct {
	sessions    sync.Map // map[string]*Session
	idleTimeout time.Duration
	now         func() time.Time
	lastSweep   atomic.Int64
}

func NewManager(idleTimeout time.Duration) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Manager{
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get returns the live session for id and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := m.sessions.Load(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	now := m.now()
	if s.idleSince(now) > m.idleTimeout {
		m.sessions.Delete(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Create starts a session with a fresh random id.
func (m *Manager) Create() *Session {
	m.sweep()

	s := newSession(uuid.New().String())
	s.touch(m.now())
	m.sessions.Store(s.ID, s)
	return s
}

// GetOrCreate returns the session for id, or a new one if id is unknown.
// The boolean is true when a session was created.
func (m *Manager) GetOrCreate(id string) (*Session, bool) {
	if s, ok := m.Get(id); ok {
		return s, false
	}
	return m.Create(), true
}

// Delete ends the session and drops its reveal states.
func (m *Manager) Delete(id string) {
	m.sessions.Delete(id)
}

func (m *Manager) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// sweep drops idle sessions, at most once per sweepInterval.
func (m *Manager) sweep() {
	now := m.now()
	last := m.lastSweep.Load()
	if now.UnixNano()-last < int64(sweepInterval) || !m.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	dropped := 0
	m.sessions.Range(func(k, v any) bool {
		if v.(*Session).idleSince(now) > m.idleTimeout {
			m.sessions.Delete(k)
			dropped++
		}
		return true
	})
	if dropped > 0 {
		log.Debug("Dropped idle sessions", zap.Int("count", dropped))
	}
}
