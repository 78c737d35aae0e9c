package repository

import (
	"context"
	"errors"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, statusID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status_id", statusID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ステータスと理由を1文で書く
func (r *OrderGormRepository) Cancel(ctx context.Context, orderID int64, reason string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status_id":     model.OrderStatusCancelledID,
			"cancel_reason": reason,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 財務レポート（Entregadoのみ集計）

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) RevenueBetween(ctx context.Context, from, to time.Time) (int64, int64, error) {
	type row struct {
		Total  int64
		Orders int64
	}
	var out row

	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total),0) as total, COUNT(*) as orders").
		Where("status_id = ?", model.OrderStatusDeliveredID).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&out).Error
	if err != nil {
		return 0, 0, err
	}

	return out.Total, out.Orders, nil
}

func (r *ReportGormRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repo.ProductSales, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var rows []repo.ProductSales
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id as product_id, products.name as name, SUM(order_items.quantity) as quantity, SUM(order_items.subtotal) as revenue").
		Joins("join orders on orders.id = order_items.order_id").
		Joins("join products on products.id = order_items.product_id").
		Where("orders.status_id = ?", model.OrderStatusDeliveredID).
		Where("orders.created_at >= ? AND orders.created_at <= ?", from, to).
		Group("order_items.product_id, products.name").
		Order("quantity desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductSales{}, err
	}

	return rows, nil
}
