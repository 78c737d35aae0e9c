package repository

import (
	"context"

	"agrosoft/internal/domain/model"
)

// ステータス・支払い方法などの閉じた列挙。参照のみで、ワークフローからは作らない。
type LookupRepository interface {
	OrderStatusName(ctx context.Context, statusID int64) (string, error)
	PaymentMethodName(ctx context.Context, methodID int64) (string, error)
	ListOrderStatuses(ctx context.Context) ([]model.OrderStatus, error)
	ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListPQRSTypes(ctx context.Context) ([]model.PQRSType, error)
}
