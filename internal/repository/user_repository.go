package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
)

type UserRepository struct {
	Store DocumentStore
}

func NewUserRepository(store DocumentStore) *UserRepository {
	return &UserRepository{Store: store}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return listAs[model.User](ctx, r.Store, CollectionUsers)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.Store, CollectionUsers)
}
