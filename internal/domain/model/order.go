package model

import "time"

// estado_pedidoルックアップのID。行はseedで入れ、ワークフローからは作らない。
const (
	OrderStatusPendingID   int64 = 1
	OrderStatusShippedID   int64 = 2
	OrderStatusDeliveredID int64 = 3
	OrderStatusCancelledID int64 = 4
)

type OrderStatus struct {
	ID   int64  `gorm:"primaryKey" json:"id_estado"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"nombre_estado"`
}

type PaymentMethod struct {
	ID   int64  `gorm:"primaryKey" json:"id_metodo_pago"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"nombre_metodo"`
}

type Order struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id_pedido"`
	UserID             int64     `gorm:"not null;index" json:"id_usuario"`
	PaymentMethodID    int64     `gorm:"not null" json:"id_metodo_pago"`
	StatusID           int64     `gorm:"not null;index;default:1" json:"id_estado"`
	TrackingNumber     string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"numero_seguimiento"`
	ShippingAddress    string    `gorm:"type:varchar(255);not null" json:"direccion_envio"`
	ShippingCity       string    `gorm:"type:varchar(100);not null" json:"ciudad_envio"`
	ShippingPostalCode string    `gorm:"type:varchar(20)" json:"codigo_postal_envio"`
	Notes              string    `gorm:"type:text" json:"notas_pedido"`
	Total              int64     `gorm:"not null" json:"total_pedido"`
	CancelReason       string    `gorm:"type:varchar(255)" json:"motivo_cancelacion"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime" json:"fecha_pedido"`
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
