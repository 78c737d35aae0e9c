package repository

import (
	"context"
	"time"

	"agrosoft/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, statusID int64) error
	// キャンセル専用：ステータスと理由を同時に書く
	Cancel(ctx context.Context, orderID int64, reason string) error
}

// 財務レポート用の集計
type ProductSales struct {
	ProductID int64  `json:"id_producto"`
	Name      string `json:"nombre_producto"`
	Quantity  int64  `json:"cantidad_vendida"`
	Revenue   int64  `json:"ingresos"`
}

type ReportRepository interface {
	// Entregadoの注文だけ数える
	RevenueBetween(ctx context.Context, from, to time.Time) (total int64, orders int64, err error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
}
