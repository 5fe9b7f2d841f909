package cart

import (
	"context"
	"sync"
)

// Store persists carts per session token. Get returns an empty cart for an
// unknown session rather than an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps carts in process memory. Used when no Redis is
// configured, and by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]Cart)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[sessionID]
	if !ok {
		return &Cart{}, nil
	}

	copied := Cart{Lines: make([]Line, len(stored.Lines))}
	copy(copied.Lines, stored.Lines)
	return &copied, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := Cart{Lines: make([]Line, len(c.Lines))}
	copy(copied.Lines, c.Lines)
	s.carts[sessionID] = copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
