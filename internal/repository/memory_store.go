package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/internal/util"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type memoryCollection struct {
	order []string
	docs  map[string]bson.M
}

// MemoryStore keeps documents in process, listing them in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]bson.M)}
		s.collections[name] = c
	}
	return c
}

// Seed inserts documents as given, without timestamps. An "id" or "_id"
// string field is used as the identifier when present.
func (s *MemoryStore) Seed(collection string, docs ...bson.M) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id := seedID(d)
		if _, exists := c.docs[id]; !exists {
			c.order = append(c.order, id)
		}
		c.docs[id] = withoutID(d)
		ids = append(ids, id)
	}
	return ids
}

func seedID(d bson.M) string {
	for _, key := range []string{"id", "_id"} {
		if v, ok := d[key].(string); ok && v != "" {
			return v
		}
	}
	return uuid.New().String()
}

// LoadFixture seeds the store from a JSON object mapping collection names
// to arrays of documents.
func (s *MemoryStore) LoadFixture(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fixture map[string][]map[string]interface{}
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parse fixture %s: %w", path, err)
	}

	for name, docs := range fixture {
		seeded := make([]bson.M, len(docs))
		for i, d := range docs {
			seeded[i] = bson.M(d)
		}
		s.Seed(name, seeded...)
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return []model.Document{}, nil
	}

	docs := make([]model.Document, 0, len(c.order))
	for _, id := range c.order {
		docs = append(docs, model.Document{ID: id, Data: copyFields(c.docs[id])})
	}
	return docs, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, util.ErrDocumentNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return nil, util.ErrDocumentNotFound
	}
	return &model.Document{ID: id, Data: copyFields(data)}, nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, fields bson.M) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	id := uuid.New().String()
	c.order = append(c.order, id)
	c.docs[id] = stamp(fields, fieldCreatedDate)
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return util.ErrDocumentNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return util.ErrDocumentNotFound
	}

	merged := copyFields(data)
	for k, v := range stamp(fields, fieldUpdatedDate) {
		merged[k] = v
	}
	c.docs[id] = merged
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return util.ErrDocumentNotFound
	}
	if _, ok := c.docs[id]; !ok {
		return util.ErrDocumentNotFound
	}

	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func copyFields(fields bson.M) bson.M {
	out := make(bson.M, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
