package repository

import (
	"context"
	"errors"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"gorm.io/gorm"
)

type DiscountGormRepository struct {
	db *gorm.DB
}

func NewDiscountGormRepository(db *gorm.DB) *DiscountGormRepository {
	return &DiscountGormRepository{db: db}
}

func (r *DiscountGormRepository) Create(ctx context.Context, d model.Discount) (model.Discount, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return model.Discount{}, err
	}
	return d, nil
}

func (r *DiscountGormRepository) LinkProducts(ctx context.Context, discountID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	links := make([]model.ProductDiscount, 0, len(productIDs))
	for _, pid := range productIDs {
		links = append(links, model.ProductDiscount{
			DiscountID: discountID,
			ProductID:  pid,
		})
	}

	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *DiscountGormRepository) ListActive(ctx context.Context, now time.Time) ([]model.Discount, error) {
	var items []model.Discount
	err := r.db.WithContext(ctx).
		Where("starts_at <= ? AND ends_at >= ?", now, now).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Discount{}, err
	}
	return items, nil
}

func (r *DiscountGormRepository) ActiveForProduct(ctx context.Context, productID int64, now time.Time) (model.Discount, bool, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).
		Table("discounts").
		Joins("join product_discounts on product_discounts.discount_id = discounts.id").
		Where("product_discounts.product_id = ?", productID).
		Where("discounts.starts_at <= ? AND discounts.ends_at >= ?", now, now).
		Order("discounts.percentage desc").
		First(&d).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Discount{}, false, nil
	}
	if err != nil {
		return model.Discount{}, false, err
	}
	return d, true, nil
}

// 期間内の割引が付いた商品を返す
func (r *DiscountGormRepository) ListOffers(ctx context.Context, now time.Time) ([]repo.OfferRow, error) {
	type joined struct {
		model.Product
		Percentage int64
	}

	var rows []joined
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*, discounts.percentage as percentage").
		Joins("join product_discounts on product_discounts.product_id = products.id").
		Joins("join discounts on discounts.id = product_discounts.discount_id").
		Where("discounts.starts_at <= ? AND discounts.ends_at >= ?", now, now).
		Where("products.is_active = ? AND products.deleted_at IS NULL", true).
		Order("products.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OfferRow{}, err
	}

	out := make([]repo.OfferRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.OfferRow{Product: row.Product, Percentage: row.Percentage})
	}
	return out, nil
}
