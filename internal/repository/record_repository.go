package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
)

type RecordRepository struct {
	Store DocumentStore
}

func NewRecordRepository(store DocumentStore) *RecordRepository {
	return &RecordRepository{Store: store}
}

func (r *RecordRepository) FindAll(ctx context.Context) ([]model.ScoreRecord, error) {
	return listAs[model.ScoreRecord](ctx, r.Store, CollectionRecords)
}
