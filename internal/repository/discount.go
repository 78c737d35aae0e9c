package repository

import (
	"context"
	"time"

	"agrosoft/internal/domain/model"
)

// オファー一覧の1行（商品＋適用中の割引率）
type OfferRow struct {
	Product    model.Product `json:"producto"`
	Percentage int64         `json:"porcentaje"`
}

type DiscountRepository interface {
	Create(ctx context.Context, d model.Discount) (model.Discount, error)
	// 作成と同一トランザクションで張る
	LinkProducts(ctx context.Context, discountID int64, productIDs []int64) error
	ListActive(ctx context.Context, now time.Time) ([]model.Discount, error)
	// 期間内の割引が商品にあるか
	ActiveForProduct(ctx context.Context, productID int64, now time.Time) (model.Discount, bool, error)
	ListOffers(ctx context.Context, now time.Time) ([]OfferRow, error)
}
