package session

import (
	"context"
	"fmt"
	"sync"
)

// Manager holds at most one live session per trainee and form. The
// correction workflow is single-writer per trainee per form, so an existing
// session is reused unless its mode no longer matches the request.
type Manager struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[string]*Session
}

func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:     deps.withDefaults(),
		sessions: make(map[string]*Session),
	}
}

func sessionKey(traineeID uint, formID string) string {
	return fmt.Sprintf("%d:%s", traineeID, formID)
}

// Acquire returns the live session for (trainee, form), opening one when
// needed. A mode switch (entering or leaving a correction) discards the old
// session first.
func (m *Manager) Acquire(ctx context.Context, traineeID uint, formID, correctionOf string) (*Session, error) {
	key := sessionKey(traineeID, formID)
	wantMode := ModeNormal
	if correctionOf != "" {
		wantMode = ModeCorrection
	}

	m.mu.Lock()
	if s, ok := m.sessions[key]; ok {
		if s.Mode() == wantMode && s.State() != StateDone {
			m.mu.Unlock()
			return s, nil
		}
		s.Close()
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	s, err := Open(ctx, m.deps, traineeID, formID, correctionOf)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[key]; ok {
		// Lost the race; keep the first one.
		s.Close()
		return existing, nil
	}
	m.sessions[key] = s
	return s, nil
}

// Release closes and forgets the session, cancelling its pending autosave.
func (m *Manager) Release(traineeID uint, formID string) {
	key := sessionKey(traineeID, formID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		s.Close()
		delete(m.sessions, key)
	}
}
