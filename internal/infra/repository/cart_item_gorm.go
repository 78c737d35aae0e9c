package repository

import (
	"context"
	"errors"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同一商品は数量加算。単価は最初の追加時点のものを保持し、
// subtotalはその単価で再計算する。
func (r *CartItemGormRepository) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64, unitPriceAtAdd int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error

		if err == nil {
			// 既存ありなら数量を増やす（単価は据え置き）
			newQty := item.Quantity + addQty

			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Updates(map[string]interface{}{
					"quantity": newQty,
					"subtotal": newQty * item.UnitPriceAtAdd,
				})

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newItem := model.CartItem{
			CartID:         cartID,
			ProductID:      productID,
			Quantity:       addQty,
			UnitPriceAtAdd: unitPriceAtAdd,
			Subtotal:       addQty * unitPriceAtAdd,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}

		return nil
	})
}

// 数量とsubtotalを同時に更新
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Updates(map[string]interface{}{
			"quantity": qty,
			"subtotal": gorm.Expr("unit_price_at_add * ?", qty),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, cartItemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("id = ?", cartItemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// cartItemがそのuserのカートに属しているかを判定
func (r *CartItemGormRepository) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Joins("join carts on carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", cartItemID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
