package model

import "time"

// PQRS = peticiones / quejas / reclamos / sugerencias。
// 注文ワークフローとは独立したサポート窓口リソース。
type PQRSType struct {
	ID   int64  `gorm:"primaryKey" json:"id_tipo"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"nombre_tipo"`
}

type PQRSStatus string

const (
	PQRSStatusOpen     PQRSStatus = "ABIERTO"
	PQRSStatusAnswered PQRSStatus = "RESPONDIDO"
	PQRSStatusClosed   PQRSStatus = "CERRADO"
)

type PQRS struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id_pqrs"`
	UserID      int64      `gorm:"not null;index" json:"id_usuario"`
	TypeID      int64      `gorm:"not null;index" json:"id_tipo"`
	Subject     string     `gorm:"type:varchar(255);not null" json:"asunto"`
	Description string     `gorm:"type:text;not null" json:"descripcion"`
	Status      PQRSStatus `gorm:"type:varchar(20);not null;default:'ABIERTO'" json:"estado"`
	Response    string     `gorm:"type:text" json:"respuesta"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
