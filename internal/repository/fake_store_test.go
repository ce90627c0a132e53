package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// flakyStore fails the first failures calls of every operation with err.
type flakyStore struct {
	*MemoryStore
	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

func (s *flakyStore) fail() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return s.err
	}
	return nil
}

func (s *flakyStore) List(ctx context.Context, collection string) ([]model.Document, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.MemoryStore.List(ctx, collection)
}

func (s *flakyStore) Add(ctx context.Context, collection string, fields bson.M) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return s.MemoryStore.Add(ctx, collection, fields)
}

func (s *flakyStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	if err := s.fail(); err != nil {
		return err
	}
	return s.MemoryStore.Update(ctx, collection, id, fields)
}
