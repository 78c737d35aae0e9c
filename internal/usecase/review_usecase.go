package usecase

import (
	"context"
	"net/http"
	"strings"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
}

func NewReviewUsecase(reviewRepo repo.ReviewRepository, productRepo repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviewRepo: reviewRepo, productRepo: productRepo}
}

type CreateReviewInput struct {
	ProductID int64
	Rating    int64
	Comment   string
}

func (u *ReviewUsecase) Create(ctx context.Context, userID int64, in CreateReviewInput) (model.Review, error) {
	if userID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if in.ProductID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "id_producto inválido")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "calificacion debe estar entre 1 y 5")
	}

	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "producto no encontrado")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	r, err := u.reviewRepo.Create(ctx, model.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	})
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return r, nil
}

func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return []model.Review{}, NewHTTPError(http.StatusBadRequest, "id_producto inválido")
	}

	items, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return []model.Review{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}
