package repository

import (
	"context"
	"errors"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) FindByProductID(ctx context.Context, productID int64) (model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Inventory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

func (r *InventoryGormRepository) Create(ctx context.Context, inv model.Inventory) error {
	return r.db.WithContext(ctx).Create(&inv).Error
}

// 在庫の現在値を設定
func (r *InventoryGormRepository) SetQuantity(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		Update("available_quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす
func (r *InventoryGormRepository) DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("product_id = ? AND available_quantity >= ?", productID, qty).
		Update("available_quantity", gorm.Expr("available_quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）
func (r *InventoryGormRepository) Increase(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		Update("available_quantity", gorm.Expr("available_quantity + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) CreateMovement(ctx context.Context, mv model.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(&mv).Error
}
