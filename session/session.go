// Package session stores per-conversation message history, persisted as
// one JSON file per session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is a single conversation turn.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a conversation with its message history.
type Session struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	mu        sync.RWMutex
}

// Options configures a Manager. Zero fields take the documented defaults.
type Options struct {
	// Dir is where session files are written. Default "./sessions".
	Dir string
	// TrimThreshold is the message count at which history is trimmed.
	// Default 100.
	TrimThreshold int
	// KeepRecent is how many recent messages a trim keeps. Default 50.
	KeepRecent int
}

// Manager owns a set of sessions and their on-disk JSON files. It is safe
// for concurrent use and satisfies the workflow's history contract.
type Manager struct {
	sessions      map[string]*Session
	dir           string
	trimThreshold int
	keepRecent    int
	mu            sync.RWMutex
}

// NewManager creates a manager and loads any sessions already on disk.
func NewManager(opts Options) (*Manager, error) {
	if opts.Dir == "" {
		opts.Dir = "./sessions"
	}
	if opts.TrimThreshold == 0 {
		opts.TrimThreshold = 100
	}
	if opts.KeepRecent == 0 {
		opts.KeepRecent = 50
	}
	if opts.KeepRecent > opts.TrimThreshold {
		return nil, fmt.Errorf("session: KeepRecent %d exceeds TrimThreshold %d", opts.KeepRecent, opts.TrimThreshold)
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("session: failed to create directory: %w", err)
	}

	m := &Manager{
		sessions:      make(map[string]*Session),
		dir:           opts.Dir,
		trimThreshold: opts.TrimThreshold,
		keepRecent:    opts.KeepRecent,
	}
	m.loadSessions()

	return m, nil
}

// Create starts a new session with a generated id. The session is not
// written to disk until it has messages.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		Messages:  make([]Message, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.sessions[session.ID] = session

	return session
}

// Get retrieves a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return session, nil
}

// List returns all known sessions.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// Delete removes a session and its file.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	err := os.Remove(m.sessionPath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Append records a turn in the session, creating the session on first use
// so callers may bring their own ids. Long histories are trimmed to the
// most recent messages once they cross the threshold.
func (m *Manager) Append(ctx context.Context, sessionID, role, content string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if !ok {
		now := time.Now()
		session = &Session{
			ID:        sessionID,
			Messages:  make([]Message, 0),
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.sessions[sessionID] = session
	}
	m.mu.Unlock()

	session.mu.Lock()
	defer session.mu.Unlock()

	session.Messages = append(session.Messages, Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	session.UpdatedAt = time.Now()

	if len(session.Messages) > m.trimThreshold {
		session.Messages = session.Messages[len(session.Messages)-m.keepRecent:]
	}

	return m.saveSession(session)
}

// Messages returns a copy of the session's history.
func (m *Manager) Messages(sessionID string) ([]Message, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.RLock()
	defer session.mu.RUnlock()

	messages := make([]Message, len(session.Messages))
	copy(messages, session.Messages)
	return messages, nil
}

func (m *Manager) sessionPath(id string) string {
	return filepath.Join(m.dir, fmt.Sprintf("%s.json", id))
}

// saveSession is called with the session lock held.
func (m *Manager) saveSession(session *Session) error {
	if len(session.Messages) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(m.sessionPath(session.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (m *Manager) loadSessions() {
	files, err := os.ReadDir(m.dir)
	if err != nil {
		return
	}

	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(m.dir, file.Name()))
		if err != nil {
			continue
		}

		var session Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue
		}
		if len(session.Messages) > 0 {
			m.sessions[session.ID] = &session
		}
	}
}
