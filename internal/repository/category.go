package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
}

type SubcategoryRepository interface {
	ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Subcategory, error)
	Create(ctx context.Context, s model.Subcategory) (model.Subcategory, error)
	Update(ctx context.Context, s model.Subcategory) error
	Delete(ctx context.Context, id int64) error
}
