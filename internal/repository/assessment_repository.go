package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
)

type AssessmentRepository struct {
	Store DocumentStore
}

func NewAssessmentRepository(store DocumentStore) *AssessmentRepository {
	return &AssessmentRepository{Store: store}
}

func (r *AssessmentRepository) FindAll(ctx context.Context) ([]model.Assessment, error) {
	return listAs[model.Assessment](ctx, r.Store, CollectionAssessments)
}

func (r *AssessmentRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.Store, CollectionAssessments)
}
