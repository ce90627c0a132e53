package repository

import (
	"context"
	"cyberar_admin_backend/internal/util"
	"cyberar_admin_backend/pkg/logger"
	"cyberar_admin_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// listAs reads a whole collection and decodes every document into T.
// Store failures surface as *util.RetrievalError. Documents whose fields
// do not fit T are skipped and reported, so one malformed document does
// not hide the rest of the collection.
func listAs[T any](ctx context.Context, store DocumentStore, collection string) ([]T, error) {
	docs, err := store.List(ctx, collection)
	if err != nil {
		return nil, util.NewRetrievalError(collection, err)
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := doc.Decode(&v); err != nil {
			monitoring.MalformedDocuments.WithLabelValues(collection).Inc()
			logger.Log.Warn("Skipping malformed document",
				zap.String("collection", collection),
				zap.String("id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func count(ctx context.Context, store DocumentStore, collection string) (int, error) {
	docs, err := store.List(ctx, collection)
	if err != nil {
		return 0, util.NewRetrievalError(collection, err)
	}
	return len(docs), nil
}
