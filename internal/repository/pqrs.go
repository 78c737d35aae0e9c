package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

type PQRSRepository interface {
	Create(ctx context.Context, p model.PQRS) (model.PQRS, error)
	FindByID(ctx context.Context, id int64) (model.PQRS, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.PQRS, error)
	ListAll(ctx context.Context, status *model.PQRSStatus) ([]model.PQRS, error)
	// 管理者の回答（estadoも同時に更新）
	Respond(ctx context.Context, id int64, response string, status model.PQRSStatus) error
}
