package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

// 在庫の窓口。真のカウンタは inventories.available_quantity のみで、
// すべての読み書きがここを通る。
type InventoryRepository interface {
	FindByProductID(ctx context.Context, productID int64) (model.Inventory, error)

	// 商品作成と同一トランザクションで呼ぶ
	Create(ctx context.Context, inv model.Inventory) error

	// 在庫の現在値を設定（生産者・管理者の補充）
	SetQuantity(ctx context.Context, productID int64, qty int64) error

	// 在庫が足りるときだけ減算（compare-and-decrement）
	DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセル）
	Increase(ctx context.Context, productID int64, qty int64) error

	// 増減履歴
	CreateMovement(ctx context.Context, mv model.InventoryMovement) error
}
