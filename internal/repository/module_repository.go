package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
)

type ModuleRepository struct {
	Store DocumentStore
}

func NewModuleRepository(store DocumentStore) *ModuleRepository {
	return &ModuleRepository{Store: store}
}

// FindAll returns modules in document order.
func (r *ModuleRepository) FindAll(ctx context.Context) ([]model.Module, error) {
	return listAs[model.Module](ctx, r.Store, CollectionModules)
}
