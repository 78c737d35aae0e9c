package model

import "time"

// 注文明細。作成時にカート明細をそのまま写す（再価格付けしない）。
// 以後は不変の履歴。
type OrderItem struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id_detalle_pedido"`
	OrderID          int64     `gorm:"not null;index" json:"id_pedido"`
	ProductID        int64     `gorm:"not null;index" json:"id_producto"`
	Quantity         int64     `gorm:"not null" json:"cantidad"`
	UnitPriceAtOrder int64     `gorm:"not null;column:unit_price_at_order" json:"precio_unitario"`
	Subtotal         int64     `gorm:"not null" json:"subtotal"`
	DiscountApplied  int64     `gorm:"not null;default:0" json:"descuento_aplicado"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
