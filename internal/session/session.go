package session // import "github.com/Xunop/e-library/internal/session"

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Xunop/e-library/internal/model"
)

// CookieName holds the session id in the browser.
const CookieName = "elibrary_session"

// Session is the per-browser view state carried across render passes. It
// owns the reveal state of every book currently on screen.
type Session struct {
	ID string

	// lastSeen is the unix nano time of the last request using the session.
	lastSeen atomic.Int64

	mu     sync.Mutex
	term   string
	reveal map[int64]model.RevealState
}

func newSession(id string) *Session {
	return &Session{
		ID:     id,
		reveal: make(map[int64]model.RevealState),
	}
}

// New returns a standalone session, mostly useful for tests.
func New() *Session {
	return newSession(uuid.New().String())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Lock serialises render passes on the same session.
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// RevealState returns the state of bookID, creating it idle on first sight.
// The caller must hold the lock.
func (s *Session) RevealState(bookID int64) model.RevealState {
	state, ok := s.reveal[bookID]
	if !ok {
		s.reveal[bookID] = model.RevealIdle
	}
	return state
}

// SetRevealState stores the state of bookID. The caller must hold the lock.
func (s *Session) SetRevealState(bookID int64, state model.RevealState) {
	s.reveal[bookID] = state
}

// Tracks reports whether the session holds a state for bookID.
func (s *Session) Tracks(bookID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reveal[bookID]
	return ok
}

// Retain discards the state of every book not in visible. The caller must
// hold the lock.
func (s *Session) Retain(visible map[int64]struct{}) {
	for id := range s.reveal {
		if _, ok := visible[id]; !ok {
			delete(s.reveal, id)
		}
	}
}

// Snapshot copies the reveal states.
func (s *Session) Snapshot() map[int64]model.RevealState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]model.RevealState, len(s.reveal))
	for id, state := range s.reveal {
		out[id] = state
	}
	return out
}

// Term is the search term of the last render pass.
func (s *Session) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// SetTerm records the search term. The caller must hold the lock.
func (s *Session) SetTerm(term string) {
	s.term = term
}
