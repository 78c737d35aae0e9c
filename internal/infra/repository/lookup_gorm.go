package repository

import (
	"context"
	"errors"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"gorm.io/gorm"
)

type LookupGormRepository struct {
	db *gorm.DB
}

func NewLookupGormRepository(db *gorm.DB) *LookupGormRepository {
	return &LookupGormRepository{db: db}
}

func (r *LookupGormRepository) OrderStatusName(ctx context.Context, statusID int64) (string, error) {
	var s model.OrderStatus
	err := r.db.WithContext(ctx).Where("id = ?", statusID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

func (r *LookupGormRepository) PaymentMethodName(ctx context.Context, methodID int64) (string, error) {
	var m model.PaymentMethod
	err := r.db.WithContext(ctx).Where("id = ?", methodID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return m.Name, nil
}

func (r *LookupGormRepository) ListOrderStatuses(ctx context.Context) ([]model.OrderStatus, error) {
	var items []model.OrderStatus
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.OrderStatus{}, err
	}
	return items, nil
}

func (r *LookupGormRepository) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	var items []model.PaymentMethod
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.PaymentMethod{}, err
	}
	return items, nil
}

func (r *LookupGormRepository) ListRoles(ctx context.Context) ([]model.Role, error) {
	var items []model.Role
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Role{}, err
	}
	return items, nil
}

func (r *LookupGormRepository) ListPQRSTypes(ctx context.Context) ([]model.PQRSType, error) {
	var items []model.PQRSType
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.PQRSType{}, err
	}
	return items, nil
}
