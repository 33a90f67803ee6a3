package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/whatiskeptiname/portfolio/city/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = service.ErrSessionAlreadyExists
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// Manager keeps live city sessions in memory, keyed case-insensitively, and
// mirrors them to an optional store.
type Manager struct {
	sessions map[string]*service.Session
	store    SessionPersistence
	mu       sync.RWMutex
}

// NewManager creates a manager without a backing store
func NewManager() *Manager {
	return NewManagerWithPersistence(nil)
}

// NewManagerWithPersistence creates a manager that writes through to store
func NewManagerWithPersistence(store SessionPersistence) *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		store:    store,
	}
}

func key(id string) string {
	return strings.ToLower(id)
}

// Create registers a session for spec. An empty id is replaced with a fresh
// four character hex ID.
func (m *Manager) Create(id string, spec service.SessionSpec) (*service.Session, error) {
	if spec.Tuning == nil || spec.World == nil {
		return nil, fmt.Errorf("session requires a tuning and a world")
	}
	if id != "" && !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case id == "":
		id = m.freshID()
	case m.sessions[key(id)] != nil:
		return nil, ErrSessionAlreadyExists
	}

	sess := service.NewSession(id, spec)
	m.sessions[key(id)] = sess
	if err := m.persist(sess); err != nil {
		log.Printf("Warning: Failed to persist session %s: %v", id, err)
	}
	return sess, nil
}

// Get returns a live session, loading it from the store on a miss
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	sess := m.sessions[key(id)]
	m.mu.RUnlock()
	if sess != nil {
		return sess, nil
	}
	return m.adopt(id)
}

// adopt loads a stored session into memory. Concurrent callers get the
// same instance.
func (m *Manager) adopt(id string) (*service.Session, error) {
	if m.store == nil || !m.store.Exists(id) {
		return nil, ErrSessionNotFound
	}

	loaded, err := m.store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if live := m.sessions[key(id)]; live != nil {
		return live, nil
	}
	m.sessions[key(id)] = loaded
	return loaded, nil
}

// List returns the live sessions, oldest first
func (m *Manager) List() []*service.Session {
	live := m.snapshot()
	sort.Slice(live, func(i, j int) bool {
		a, b := live[i], live[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return live
}

// snapshot copies the live sessions under the read lock
func (m *Manager) snapshot() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	live := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		live = append(live, sess)
	}
	return live
}

// Delete drops a session from memory and from the store. It fails only when
// the session is in neither.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, live := m.sessions[key(id)]
	delete(m.sessions, key(id))

	if m.store != nil && m.store.Exists(id) {
		if err := m.store.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}
	if !live {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory evicts a live session and leaves any stored copy alone
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, live := m.sessions[key(id)]; !live {
		return ErrSessionNotFound
	}
	delete(m.sessions, key(id))
	return nil
}

// UpdateLastAccessed touches a session's access time. Persistence is left to
// the periodic sync so frequent steps do not rewrite the file.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.sessions[key(id)]
	if sess == nil {
		return ErrSessionNotFound
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

// Save writes one live session to the store
func (m *Manager) Save(id string) error {
	if m.store == nil {
		return nil
	}

	m.mu.RLock()
	sess := m.sessions[key(id)]
	m.mu.RUnlock()
	if sess == nil {
		return ErrSessionNotFound
	}
	return m.persist(sess)
}

// SaveAllSessions writes every live session, continuing past failures
func (m *Manager) SaveAllSessions() error {
	if m.store == nil {
		return nil
	}

	failed := 0
	for _, sess := range m.snapshot() {
		if err := m.persist(sess); err != nil {
			log.Printf("Warning: Failed to save session %s: %v", sess.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to save %d sessions", failed)
	}
	return nil
}

// CleanupExpiredSessions evicts sessions idle for longer than maxAge. Stored
// copies stay on disk and reload on the next Get.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for k, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			evicted++
		}
	}
	return evicted
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions brings every stored session into memory. Sessions
// that fail to load are logged and skipped.
func (m *Manager) LoadPersistedSessions() error {
	if m.store == nil {
		return nil
	}

	ids, err := m.store.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if m.sessions[key(id)] != nil {
			continue
		}
		sess, err := m.store.Load(id)
		if err != nil {
			log.Printf("Warning: Failed to load persisted session %s: %v", id, err)
			continue
		}
		m.sessions[key(id)] = sess
		loaded++
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted sessions from storage", loaded)
	}
	return nil
}

func (m *Manager) persist(sess *service.Session) error {
	if m.store == nil {
		return nil
	}
	return m.store.Save(sess)
}

// freshID picks a random ID unused in memory and in the store.
// Callers hold m.mu.
func (m *Manager) freshID() string {
	buf := make([]byte, 2)
	for {
		rand.Read(buf)
		id := hex.EncodeToString(buf)
		if m.sessions[id] == nil && (m.store == nil || !m.store.Exists(id)) {
			return id
		}
	}
}
