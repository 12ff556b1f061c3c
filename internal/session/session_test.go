package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xunop/e-library/internal/model"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(DefaultIdleTimeout)

	s, created := m.GetOrCreate("")
	require.True(t, created)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	again, created := m.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	_, created = m.GetOrCreate("unknown-id")
	assert.True(t, created)
	assert.Equal(t, 2, m.Len())

	m.Delete(s.ID)
	_, ok := m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestSessionRevealStates(t *testing.T) {
	s := New()

	s.Lock()
	assert.Equal(t, model.RevealIdle, s.RevealState(1))
	s.SetRevealState(2, model.RevealArmed)
	s.Unlock()

	assert.True(t, s.Tracks(1))
	assert.Equal(t, map[int64]model.RevealState{1: model.RevealIdle, 2: model.RevealArmed}, s.Snapshot())

	s.Lock()
	s.Retain(map[int64]struct{}{1: {}})
	s.SetTerm("carroll")
	s.Unlock()

	assert.False(t, s.Tracks(2))
	assert.Equal(t, "carroll", s.Term())
}

func TestManagerDropsIdleSessions(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	m := NewManager(time.Hour)
	m.now = func() time.Time { return clock }

	idle := m.Create()
	active := m.Create()

	clock = clock.Add(50 * time.Minute)
	_, ok := m.Get(active.ID)
	require.True(t, ok)

	// idle is past the timeout, active was used 20 minutes ago.
	clock = clock.Add(20 * time.Minute)
	fresh := m.Create()
	assert.Equal(t, 2, m.Len())
	_, ok = m.Get(idle.ID)
	assert.False(t, ok)
	got, ok := m.Get(active.ID)
	require.True(t, ok)
	assert.Same(t, active, got)

	// An expired session is not handed out even before the next sweep.
	clock = clock.Add(2 * time.Hour)
	_, ok = m.Get(fresh.ID)
	assert.False(t, ok)
}
