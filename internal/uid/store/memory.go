package store

import (
	"context"
	"sync"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgerror"
	"github.com/raise-sistemas/jsr-uid/internal/uid/entity"
)

// InMemoryStore keeps the checkpoint in process memory. Nothing survives a
// restart, which is fine for tests and single-shot runs.
type InMemoryStore struct {
	mu  sync.RWMutex
	cp  entity.Checkpoint
	set bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load(ctx context.Context) (entity.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return entity.Checkpoint{}, pkgerror.ErrNotFound
	}
	return s.cp, nil
}

func (s *InMemoryStore) Save(ctx context.Context, cp entity.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		cp = s.cp.Merge(cp)
	}
	s.cp = cp
	s.set = true
	return nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
