package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgerror"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgpebble"
	"github.com/raise-sistemas/jsr-uid/internal/uid/entity"
)

var checkpointKey = []byte("uid/checkpoint")

// PebbleStore persists the checkpoint in a Pebble database. Save merges
// with the stored checkpoint, keeping the later value of each field.
type PebbleStore struct {
	mu sync.Mutex
	db *pkgpebble.DB
}

func NewPebbleStore(db *pkgpebble.DB) *PebbleStore {
	return &PebbleStore{db: db}
}

func (s *PebbleStore) Load(ctx context.Context) (entity.Checkpoint, error) {
	raw, err := s.db.Get(checkpointKey)
	if err != nil {
		if errors.Is(err, pkgpebble.ErrNotFound) {
			return entity.Checkpoint{}, pkgerror.ErrNotFound
		}
		return entity.Checkpoint{}, err
	}

	var cp entity.Checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return entity.Checkpoint{}, fmt.Errorf("decode checkpoint: %w", err)
	}
	return cp, nil
}

func (s *PebbleStore) Save(ctx context.Context, cp entity.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.Load(ctx)
	switch {
	case err == nil:
		cp = stored.Merge(cp)
	case !errors.Is(err, pkgerror.ErrNotFound):
		return err
	}

	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return s.db.Set(checkpointKey, raw)
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
