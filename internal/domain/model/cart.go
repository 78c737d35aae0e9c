package model

import "time"

type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVO"
	CartStatusCompleted CartStatus = "COMPLETADO"
)

// 1ユーザーにつきACTIVOは1つ。初回アクセス時に遅延作成する。
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id_carrito"`
	UserID    int64      `gorm:"not null;index" json:"id_usuario"`
	Status    CartStatus `gorm:"type:varchar(20);not null;index" json:"estado"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"ultima_actualizacion"`
}
