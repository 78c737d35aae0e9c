package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, r model.Review) (model.Review, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
}
