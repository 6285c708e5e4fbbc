package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryManager keeps sessions in process memory. It backs tests and local
// runs without a Redis instance; entries never expire.
type MemoryManager struct {
	mu       sync.RWMutex
	sessions map[string]int64
}

// NewMemoryManager builds an empty in-memory manager.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{sessions: make(map[string]int64)}
}

// Create issues a fresh token bound to the user id.
func (m *MemoryManager) Create(_ context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = userID
	return token, nil
}

// Resolve returns the user id bound to the token.
func (m *MemoryManager) Resolve(_ context.Context, token string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userID, ok := m.sessions[token]
	if !ok {
		return 0, ErrNotFound
	}
	return userID, nil
}

// Destroy removes the session. Removing an absent token succeeds.
func (m *MemoryManager) Destroy(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
