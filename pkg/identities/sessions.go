// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package identities

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

// Session is an authenticated login. The token is an opaque UUID carried
// by the session cookie or an Authorization bearer header.
type Session struct {
	Token string
	// User is the sanitized account the session belongs to. Role and
	// allowed modalities are captured at login time.
	User       schemas.User
	LastActive time.Time
}

// Manager tracks live sessions in memory with a sliding inactivity
// timeout. The registry is single-process (the data directory carries a
// flock), so there is nothing to share sessions with; a restart simply
// asks everyone to log in again.
type Manager struct {
	mu       sync.Mutex
	timeout  time.Duration
	sessions map[string]*Session

	now func() time.Time
}

// NewManager creates a session manager with the given inactivity timeout.
func NewManager(timeout time.Duration) *Manager {
	return &Manager{
		timeout:  timeout,
		sessions: map[string]*Session{},
		now:      time.Now,
	}
}

// Issue creates a session for the user and returns it.
func (m *Manager) Issue(user schemas.User) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		Token:      uuid.NewString(),
		User:       user.Sanitized(),
		LastActive: m.now(),
	}
	m.sessions[s.Token] = s
	return s
}

// Resolve looks up the session for a token. Sessions idle for longer than
// the timeout are discarded; live ones get their activity window renewed.
func (m *Manager) Resolve(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	now := m.now()
	if now.Sub(s.LastActive) > m.timeout {
		delete(m.sessions, token)
		return Session{}, false
	}
	s.LastActive = now
	return *s, true
}

// Revoke discards the session for a token, if any.
func (m *Manager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// RevokeUser discards every session belonging to the given user id. Used
// when an account is deleted.
func (m *Manager) RevokeUser(userID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.User.ID == userID {
			delete(m.sessions, token)
		}
	}
}
