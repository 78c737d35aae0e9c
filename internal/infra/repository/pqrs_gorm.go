package repository

import (
	"context"
	"errors"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"gorm.io/gorm"
)

type PQRSGormRepository struct {
	db *gorm.DB
}

func NewPQRSGormRepository(db *gorm.DB) *PQRSGormRepository {
	return &PQRSGormRepository{db: db}
}

func (r *PQRSGormRepository) Create(ctx context.Context, p model.PQRS) (model.PQRS, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.PQRS{}, err
	}
	return p, nil
}

func (r *PQRSGormRepository) FindByID(ctx context.Context, id int64) (model.PQRS, error) {
	var p model.PQRS
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PQRS{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PQRS{}, err
	}
	return p, nil
}

func (r *PQRSGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.PQRS, error) {
	var items []model.PQRS
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.PQRS{}, err
	}
	return items, nil
}

func (r *PQRSGormRepository) ListAll(ctx context.Context, status *model.PQRSStatus) ([]model.PQRS, error) {
	q := r.db.WithContext(ctx).Model(&model.PQRS{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var items []model.PQRS
	if err := q.Order("id desc").Find(&items).Error; err != nil {
		return []model.PQRS{}, err
	}
	return items, nil
}

func (r *PQRSGormRepository) Respond(ctx context.Context, id int64, response string, status model.PQRSStatus) error {
	res := r.db.WithContext(ctx).Model(&model.PQRS{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"response": response,
			"status":   status,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
