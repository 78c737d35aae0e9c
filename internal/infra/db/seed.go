package db

import (
	"agrosoft/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed はルックアップ行を冪等に投入する。
// ワークフローはこれらの行を作らない。起動時にここで揃える。
func Seed(db *gorm.DB) error {
	roles := []model.Role{
		{ID: model.RoleAdminID, Name: "Administrador"},
		{ID: model.RoleCustomerID, Name: "Cliente"},
		{ID: model.RoleProducerID, Name: "Productor"},
	}

	statuses := []model.OrderStatus{
		{ID: model.OrderStatusPendingID, Name: "Pendiente"},
		{ID: model.OrderStatusShippedID, Name: "Enviado"},
		{ID: model.OrderStatusDeliveredID, Name: "Entregado"},
		{ID: model.OrderStatusCancelledID, Name: "Cancelado"},
	}

	payments := []model.PaymentMethod{
		{ID: 1, Name: "Efectivo"},
		{ID: 2, Name: "Tarjeta"},
		{ID: 3, Name: "Transferencia"},
		{ID: 4, Name: "Contra entrega"},
	}

	pqrsTypes := []model.PQRSType{
		{ID: 1, Name: "Petición"},
		{ID: 2, Name: "Queja"},
		{ID: 3, Name: "Reclamo"},
		{ID: 4, Name: "Sugerencia"},
	}

	onConflictNothing := clause.OnConflict{DoNothing: true}

	if err := db.Clauses(onConflictNothing).Create(&roles).Error; err != nil {
		return err
	}
	if err := db.Clauses(onConflictNothing).Create(&statuses).Error; err != nil {
		return err
	}
	if err := db.Clauses(onConflictNothing).Create(&payments).Error; err != nil {
		return err
	}
	if err := db.Clauses(onConflictNothing).Create(&pqrsTypes).Error; err != nil {
		return err
	}

	return nil
}
