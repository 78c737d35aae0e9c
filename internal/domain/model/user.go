package model

import "time"

// ロールはDBのルックアップ行（動的には作らない）
type Role struct {
	ID   int64  `gorm:"primaryKey" json:"id_rol"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"nombre_rol"`
}

const (
	RoleAdminID    int64 = 1
	RoleCustomerID int64 = 2
	RoleProducerID int64 = 3
)

type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id_usuario"`
	Name         string     `gorm:"type:varchar(255);not null" json:"nombre"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"correo"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Phone        string     `gorm:"type:varchar(30)" json:"telefono"`
	RoleID       int64      `gorm:"not null;index;default:2" json:"id_rol"`
	IsActive     bool       `gorm:"not null;default:true" json:"activo"`
	LastLoginAt  *time.Time `json:"-"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
