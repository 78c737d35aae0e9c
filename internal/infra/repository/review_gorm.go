package repository

import (
	"context"

	"agrosoft/internal/domain/model"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (r *ReviewGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var items []model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Review{}, err
	}
	return items, nil
}
