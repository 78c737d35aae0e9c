package model

import "time"

// 商品1件につき在庫レコード1件（生産者が所有）。
type Inventory struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id_inventario"`
	ProductID         int64     `gorm:"not null;uniqueIndex" json:"id_producto"`
	ProducerID        int64     `gorm:"not null;index" json:"id_productor"`
	AvailableQuantity int64     `gorm:"not null;default:0" json:"cantidad_disponible"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type InventoryMovementType string

const (
	//注文確定による減算
	MovementOrder InventoryMovementType = "PEDIDO"
	//キャンセルによる在庫戻し
	MovementCancelRestore InventoryMovementType = "CANCELACION"
	//生産者/管理者による補充・調整
	MovementRestock InventoryMovementType = "REPOSICION"
)

// 在庫の増減履歴
type InventoryMovement struct {
	ID        int64                 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64                 `gorm:"not null;index" json:"id_producto"`
	Type      InventoryMovementType `gorm:"type:varchar(20);not null" json:"tipo"`
	Delta     int64                 `gorm:"not null" json:"delta"`
	Reason    string                `gorm:"type:varchar(255)" json:"motivo"`
	CreatedAt time.Time             `gorm:"not null;autoCreateTime" json:"created_at"`
}
