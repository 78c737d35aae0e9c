package model

import "time"

// 商品レビュー（1〜5）
type Review struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id_resena"`
	ProductID int64     `gorm:"not null;index" json:"id_producto"`
	UserID    int64     `gorm:"not null;index" json:"id_usuario"`
	Rating    int64     `gorm:"not null" json:"calificacion"`
	Comment   string    `gorm:"type:text" json:"comentario"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"fecha"`
}
