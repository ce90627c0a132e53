package repository

import (
	"context"
	"cyberar_admin_backend/internal/util"
)

// CollectionRepository answers questions about whole collections.
type CollectionRepository struct {
	Store DocumentStore
}

func NewCollectionRepository(store DocumentStore) *CollectionRepository {
	return &CollectionRepository{Store: store}
}

func (r *CollectionRepository) Count(ctx context.Context, name string) (int, error) {
	if !IsKnownCollection(name) {
		return 0, util.ErrUnknownCollection
	}
	return count(ctx, r.Store, name)
}
