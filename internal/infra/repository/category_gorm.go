package repository

import (
	"context"
	"errors"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":        c.Name,
			"description": c.Description,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type SubcategoryGormRepository struct {
	db *gorm.DB
}

func NewSubcategoryGormRepository(db *gorm.DB) *SubcategoryGormRepository {
	return &SubcategoryGormRepository{db: db}
}

func (r *SubcategoryGormRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	var items []model.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Subcategory{}, err
	}
	return items, nil
}

func (r *SubcategoryGormRepository) Create(ctx context.Context, s model.Subcategory) (model.Subcategory, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Subcategory{}, err
	}
	return s, nil
}

func (r *SubcategoryGormRepository) Update(ctx context.Context, s model.Subcategory) error {
	res := r.db.WithContext(ctx).Model(&model.Subcategory{}).
		Where("id = ?", s.ID).
		Update("name", s.Name)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SubcategoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Subcategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
