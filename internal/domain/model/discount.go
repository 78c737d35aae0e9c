package model

import "time"

// 割引（オファー）。期間内のみ有効。
type Discount struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id_descuento"`
	Name       string    `gorm:"type:varchar(100);not null" json:"nombre_descuento"`
	Percentage int64     `gorm:"not null" json:"porcentaje"`
	StartsAt   time.Time `gorm:"not null" json:"fecha_inicio"`
	EndsAt     time.Time `gorm:"not null" json:"fecha_fin"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 割引と商品のリンク（作成と同一トランザクションで張る）
type ProductDiscount struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscountID int64 `gorm:"not null;index" json:"id_descuento"`
	ProductID  int64 `gorm:"not null;index" json:"id_producto"`
}
