package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using an in-memory slice.
// Intended for demos and testing — no database required.
type MemoryStore struct {
	mu          sync.RWMutex
	conversions []Conversion
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(_ context.Context, c *Conversion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.conversions = append(s.conversions, *c)
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Conversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = defaultListLimit
	}

	out := make([]Conversion, 0, limit)
	for i := len(s.conversions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.conversions[i])
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Conversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.conversions {
		if s.conversions[i].ID == id {
			c := s.conversions[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}
