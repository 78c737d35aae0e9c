package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	// 一覧表示のN+1回避：order_id IN (...) で一括取得してメモリ上でまとめる
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderItem, error)
}
