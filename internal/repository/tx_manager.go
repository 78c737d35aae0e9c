package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	Discounts() DiscountRepository
	Lookups() LookupRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// ワークフロー境界でちょうど1回commitまたはrollbackされる。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
