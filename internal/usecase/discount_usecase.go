package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"
)

type DiscountUsecase struct {
	tx           repo.TransactionManager
	discountRepo repo.DiscountRepository
}

func NewDiscountUsecase(tx repo.TransactionManager, discountRepo repo.DiscountRepository) *DiscountUsecase {
	return &DiscountUsecase{tx: tx, discountRepo: discountRepo}
}

type CreateDiscountInput struct {
	Name       string
	Percentage int64
	StartsAt   time.Time
	EndsAt     time.Time
	ProductIDs []int64
}

type OfferProductOutput struct {
	Product    model.Product `json:"producto"`
	Percentage int64         `json:"porcentaje"`
	OfferPrice int64         `json:"precio_oferta"`
}

// 割引の作成と商品リンクは同一トランザクション。
// 存在しない商品へのリンクはFK違反で全体が失敗する。
func (u *DiscountUsecase) CreateDiscount(ctx context.Context, actorRoleID int64, in CreateDiscountInput) (model.Discount, error) {
	if actorRoleID != model.RoleAdminID {
		return model.Discount{}, NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Discount{}, NewHTTPError(http.StatusBadRequest, "nombre_descuento requerido")
	}
	if in.Percentage < 1 || in.Percentage > 100 {
		return model.Discount{}, NewHTTPError(http.StatusBadRequest, "porcentaje inválido")
	}
	if in.EndsAt.Before(in.StartsAt) {
		return model.Discount{}, NewHTTPError(http.StatusBadRequest, "rango de fechas inválido")
	}
	if len(in.ProductIDs) == 0 {
		return model.Discount{}, NewHTTPError(http.StatusBadRequest, "se requiere al menos un producto")
	}

	var created model.Discount

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		d, err := r.Discounts().Create(ctx, model.Discount{
			Name:       strings.TrimSpace(in.Name),
			Percentage: in.Percentage,
			StartsAt:   in.StartsAt,
			EndsAt:     in.EndsAt,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if err := r.Discounts().LinkProducts(ctx, d.ID, in.ProductIDs); err != nil {
			if isForeignKeyViolation(err) {
				return NewHTTPError(http.StatusBadRequest, "producto inexistente en la lista")
			}
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		created = d
		return nil
	})

	if err != nil {
		return model.Discount{}, err
	}
	return created, nil
}

func (u *DiscountUsecase) ListActiveDiscounts(ctx context.Context) ([]model.Discount, error) {
	items, err := u.discountRepo.ListActive(ctx, time.Now())
	if err != nil {
		return []model.Discount{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

// 期間内の割引が付いた商品一覧（オファー価格込み）
func (u *DiscountUsecase) ListOfferProducts(ctx context.Context) ([]OfferProductOutput, error) {
	rows, err := u.discountRepo.ListOffers(ctx, time.Now())
	if err != nil {
		return []OfferProductOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	out := make([]OfferProductOutput, 0, len(rows))
	for _, row := range rows {
		out = append(out, OfferProductOutput{
			Product:    row.Product,
			Percentage: row.Percentage,
			OfferPrice: row.Product.Price - row.Product.Price*row.Percentage/100,
		})
	}
	return out, nil
}
