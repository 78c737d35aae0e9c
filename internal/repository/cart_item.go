package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一商品は数量加算。subtotalは「追加時点の単価」で再計算する
	UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64, unitPriceAtAdd int64) error
	// subtotalも同時に更新
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
}
