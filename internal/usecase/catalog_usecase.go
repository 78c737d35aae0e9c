package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// カテゴリ・サブカテゴリ・ルックアップの素通しCRUD。
// 業務ルールは一意性とFK整合のエラー翻訳だけ。
type CatalogUsecase struct {
	categoryRepo    repo.CategoryRepository
	subcategoryRepo repo.SubcategoryRepository
	lookupRepo      repo.LookupRepository
}

func NewCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	subcategoryRepo repo.SubcategoryRepository,
	lookupRepo repo.LookupRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		lookupRepo:      lookupRepo,
	}
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

func (u *CatalogUsecase) ListSubcategories(ctx context.Context, categoryID int64) ([]model.Subcategory, error) {
	if categoryID <= 0 {
		return []model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "id_categoria inválida")
	}
	items, err := u.subcategoryRepo.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return []model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, actorRoleID int64, name string, description string) (model.Category, error) {
	if actorRoleID != model.RoleAdminID {
		return model.Category{}, NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if strings.TrimSpace(name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "nombre_categoria requerido")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        strings.TrimSpace(name),
		Description: description,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, NewHTTPError(http.StatusConflict, "la categoría ya existe")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return c, nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, actorRoleID int64, id int64, name string, description string) error {
	if actorRoleID != model.RoleAdminID {
		return NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id_categoria inválida")
	}
	if strings.TrimSpace(name) == "" {
		return NewHTTPError(http.StatusBadRequest, "nombre_categoria requerido")
	}

	err := u.categoryRepo.Update(ctx, model.Category{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: description,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "categoría no encontrada")
	}
	if err != nil {
		if isUniqueViolation(err) {
			return NewHTTPError(http.StatusConflict, "la categoría ya existe")
		}
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return nil
}

func (u *CatalogUsecase) DeleteCategory(ctx context.Context, actorRoleID int64, id int64) error {
	if actorRoleID != model.RoleAdminID {
		return NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id_categoria inválida")
	}

	err := u.categoryRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "categoría no encontrada")
	}
	if err != nil {
		//商品が参照しているカテゴリは消せない
		if isForeignKeyViolation(err) {
			return NewHTTPError(http.StatusBadRequest, "la categoría tiene productos asociados")
		}
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return nil
}

func (u *CatalogUsecase) CreateSubcategory(ctx context.Context, actorRoleID int64, categoryID int64, name string) (model.Subcategory, error) {
	if actorRoleID != model.RoleAdminID {
		return model.Subcategory{}, NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if categoryID <= 0 {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "id_categoria inválida")
	}
	if strings.TrimSpace(name) == "" {
		return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "nombre_subcategoria requerido")
	}

	if _, err := u.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if err == repo.ErrNotFound {
			return model.Subcategory{}, NewHTTPError(http.StatusBadRequest, "id_categoria inválida")
		}
		return model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	s, err := u.subcategoryRepo.Create(ctx, model.Subcategory{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(name),
	})
	if err != nil {
		return model.Subcategory{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return s, nil
}

func (u *CatalogUsecase) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	items, err := u.lookupRepo.ListPaymentMethods(ctx)
	if err != nil {
		return []model.PaymentMethod{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

func (u *CatalogUsecase) ListOrderStatuses(ctx context.Context) ([]model.OrderStatus, error) {
	items, err := u.lookupRepo.ListOrderStatuses(ctx)
	if err != nil {
		return []model.OrderStatus{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

func (u *CatalogUsecase) ListRoles(ctx context.Context) ([]model.Role, error) {
	items, err := u.lookupRepo.ListRoles(ctx)
	if err != nil {
		return []model.Role{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

func (u *CatalogUsecase) ListPQRSTypes(ctx context.Context) ([]model.PQRSType, error) {
	items, err := u.lookupRepo.ListPQRSTypes(ctx)
	if err != nil {
		return []model.PQRSType{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

// ドライバ依存のエラー判定はここに閉じ込める
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
