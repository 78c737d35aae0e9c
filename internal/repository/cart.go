package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

type CartRepository interface {
	// ACTIVOカートを取得し、無ければ作成
	GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error
	// 明細を全削除
	Clear(ctx context.Context, cartID int64) error
	// ultima_actualizacionを更新
	Touch(ctx context.Context, cartID int64) error
}
