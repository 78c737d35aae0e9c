package model

import "time"

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id_categoria"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"nombre_categoria"`
	Description string    `gorm:"type:text" json:"descripcion"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// サブカテゴリは必ず1つのカテゴリに属する
type Subcategory struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id_subcategoria"`
	CategoryID int64     `gorm:"not null;index" json:"id_categoria"`
	Name       string    `gorm:"type:varchar(100);not null" json:"nombre_subcategoria"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
