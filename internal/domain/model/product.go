package model

import (
	"time"

	"gorm.io/gorm"
)

// 在庫はProductには持たせない。
// 真の在庫カウンタは inventories.available_quantity のみ（Inventory参照）。
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id_producto"`
	Name          string         `gorm:"type:varchar(255);not null" json:"nombre_producto"`
	Description   string         `gorm:"type:text" json:"descripcion"`
	Price         int64          `gorm:"not null" json:"precio"`
	Unit          string         `gorm:"type:varchar(30)" json:"unidad_medida"`
	ImageURL      string         `gorm:"type:varchar(500)" json:"imagen_url"`
	CategoryID    int64          `gorm:"not null;index" json:"id_categoria"`
	SubcategoryID *int64         `gorm:"index" json:"id_subcategoria"`
	ProducerID    int64          `gorm:"not null;index" json:"id_productor"`
	IsActive      bool           `gorm:"not null;default:false" json:"activo"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
