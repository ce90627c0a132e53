package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/pkg/monitoring"
	"cyberar_admin_backend/pkg/tracing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// InstrumentedStore records a metric sample and a span for every store call.
type InstrumentedStore struct {
	next DocumentStore
}

func NewInstrumentedStore(next DocumentStore) *InstrumentedStore {
	return &InstrumentedStore{next: next}
}

func (s *InstrumentedStore) observe(ctx context.Context, collection, op string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.Start(ctx, "store."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("db.collection", collection),
		attribute.String("db.operation", op),
	)

	start := time.Now()
	err := fn(ctx)
	monitoring.StoreDuration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	monitoring.StoreRequests.WithLabelValues(collection, op, outcome).Inc()
	return err
}

func (s *InstrumentedStore) List(ctx context.Context, collection string) ([]model.Document, error) {
	var docs []model.Document
	err := s.observe(ctx, collection, "list", func(ctx context.Context) (err error) {
		docs, err = s.next.List(ctx, collection)
		return err
	})
	return docs, err
}

func (s *InstrumentedStore) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	var doc *model.Document
	err := s.observe(ctx, collection, "get", func(ctx context.Context) (err error) {
		doc, err = s.next.Get(ctx, collection, id)
		return err
	})
	return doc, err
}

func (s *InstrumentedStore) Add(ctx context.Context, collection string, fields bson.M) (string, error) {
	var id string
	err := s.observe(ctx, collection, "add", func(ctx context.Context) (err error) {
		id, err = s.next.Add(ctx, collection, fields)
		return err
	})
	return id, err
}

func (s *InstrumentedStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	return s.observe(ctx, collection, "update", func(ctx context.Context) error {
		return s.next.Update(ctx, collection, id, fields)
	})
}

func (s *InstrumentedStore) Delete(ctx context.Context, collection, id string) error {
	return s.observe(ctx, collection, "delete", func(ctx context.Context) error {
		return s.next.Delete(ctx, collection, id)
	})
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
