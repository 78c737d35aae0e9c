package repository

import (
	"context"
	"errors"

	"agrosoft/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	MinPrice   *int64
	MaxPrice   *int64
	Sort       string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//複数IDをまとめて取得（注文明細の表示用）
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
