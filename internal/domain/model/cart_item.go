package model

import "time"

// カート明細。
// 追加時点の単価を必ず保存し、subtotalは qty × その単価（現在価格では再計算しない）。
type CartItem struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id_detalle_carrito"`
	CartID         int64     `gorm:"not null;index" json:"id_carrito"`
	ProductID      int64     `gorm:"not null;index" json:"id_producto"`
	Quantity       int64     `gorm:"not null" json:"cantidad"`
	UnitPriceAtAdd int64     `gorm:"not null;column:unit_price_at_add" json:"precio_unitario"`
	Subtotal       int64     `gorm:"not null" json:"subtotal"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
