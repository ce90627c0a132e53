package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/internal/util"
	"cyberar_admin_backend/pkg/logger"
	"cyberar_admin_backend/pkg/monitoring"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
	}
}

// RetryingStore retries failed store calls with capped exponential backoff.
// Missing documents and context errors are returned immediately.
type RetryingStore struct {
	next   DocumentStore
	policy RetryPolicy
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewRetryingStore(next DocumentStore, policy RetryPolicy) *RetryingStore {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &RetryingStore{next: next, policy: policy, sleep: sleepContext}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, util.ErrDocumentNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

func (s *RetryingStore) do(ctx context.Context, collection, op string, fn func() error) error {
	backoff := s.policy.InitialBackoff
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !retryable(err) || attempt >= s.policy.MaxAttempts {
			return err
		}

		monitoring.StoreRetries.WithLabelValues(collection, op).Inc()
		logger.Log.Warn("Retrying document store call",
			zap.String("collection", collection),
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		if serr := s.sleep(ctx, backoff); serr != nil {
			return err
		}

		backoff *= 2
		if s.policy.MaxBackoff > 0 && backoff > s.policy.MaxBackoff {
			backoff = s.policy.MaxBackoff
		}
	}
}

func (s *RetryingStore) List(ctx context.Context, collection string) ([]model.Document, error) {
	var docs []model.Document
	err := s.do(ctx, collection, "list", func() (err error) {
		docs, err = s.next.List(ctx, collection)
		return err
	})
	return docs, err
}

func (s *RetryingStore) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	var doc *model.Document
	err := s.do(ctx, collection, "get", func() (err error) {
		doc, err = s.next.Get(ctx, collection, id)
		return err
	})
	return doc, err
}

// Add is not retried: a write that timed out may still have been applied,
// and a retry would insert a second document.
func (s *RetryingStore) Add(ctx context.Context, collection string, fields bson.M) (string, error) {
	return s.next.Add(ctx, collection, fields)
}

func (s *RetryingStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	return s.do(ctx, collection, "update", func() error {
		return s.next.Update(ctx, collection, id, fields)
	})
}

func (s *RetryingStore) Delete(ctx context.Context, collection, id string) error {
	return s.do(ctx, collection, "delete", func() error {
		return s.next.Delete(ctx, collection, id)
	})
}

func (s *RetryingStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
