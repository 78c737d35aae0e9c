package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"
)

type ProductUsecase struct {
	tx            repo.TransactionManager
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	discountRepo  repo.DiscountRepository
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	discountRepo repo.DiscountRepository,
) *ProductUsecase {
	return &ProductUsecase{
		tx:            tx,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		discountRepo:  discountRepo,
	}
}

type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	MinPrice   *int64
	MaxPrice   *int64
	Sort       string
}

type ProductOutput struct {
	model.Product
	AvailableStock int64  `json:"cantidad_disponible"`
	OfferPrice     *int64 `json:"precio_oferta,omitempty"`
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"pagina"`
	Limit int             `json:"limite"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "página inválida")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "límite inválido")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "precio_min inválido")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "precio_max inválido")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "rango de precios inválido")
	}
	switch in.Sort {
	case "", "nuevo", "precio_asc", "precio_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "orden inválido")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          strings.TrimSpace(in.Q),
		CategoryID: in.CategoryID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Sort:       in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// 詳細は在庫と適用中オファー価格も付けて返す
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "id_producto inválido")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "producto no encontrado")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if !p.IsActive {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "producto no encontrado")
	}

	out := ProductOutput{Product: p}

	inv, err := u.inventoryRepo.FindByProductID(ctx, productID)
	if err == nil {
		out.AvailableStock = inv.AvailableQuantity
	} else if err != repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	if d, found, dErr := u.discountRepo.ActiveForProduct(ctx, productID, time.Now()); dErr == nil && found {
		offer := p.Price - p.Price*d.Percentage/100
		out.OfferPrice = &offer
	} else if dErr != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	return out, nil
}

type CreateProductInput struct {
	Name          string
	Description   string
	Price         int64
	Unit          string
	ImageURL      string
	CategoryID    int64
	SubcategoryID *int64
	IsActive      bool
	InitialStock  int64
}

// 商品と在庫レコードは同一トランザクションで作る。
func (u *ProductUsecase) CreateProduct(ctx context.Context, actorUserID int64, actorRoleID int64, in CreateProductInput) (model.Product, error) {
	if actorUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if actorRoleID != model.RoleAdminID && actorRoleID != model.RoleProducerID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "solo productores o administradores")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "nombre_producto requerido")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "precio inválido")
	}
	if in.CategoryID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "id_categoria inválida")
	}
	if in.InitialStock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock inicial inválido")
	}

	var created model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()
		p, err := r.Products().Create(ctx, model.Product{
			Name:          strings.TrimSpace(in.Name),
			Description:   in.Description,
			Price:         in.Price,
			Unit:          in.Unit,
			ImageURL:      in.ImageURL,
			CategoryID:    in.CategoryID,
			SubcategoryID: in.SubcategoryID,
			ProducerID:    actorUserID,
			IsActive:      in.IsActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if err := r.Inventory().Create(ctx, model.Inventory{
			ProductID:         p.ID,
			ProducerID:        actorUserID,
			AvailableQuantity: in.InitialStock,
			CreatedAt:         now,
			UpdatedAt:         now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if in.InitialStock > 0 {
			if err := r.Inventory().CreateMovement(ctx, model.InventoryMovement{
				ProductID: p.ID,
				Type:      model.MovementRestock,
				Delta:     in.InitialStock,
				Reason:    "stock inicial",
				CreatedAt: now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}
		}

		created = p
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return created, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorUserID int64, actorRoleID int64, productID int64, in CreateProductInput) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id_producto inválido")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "nombre_producto requerido")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "precio inválido")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "producto no encontrado")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	//生産者は自分の商品だけ更新できる
	if actorRoleID != model.RoleAdminID && p.ProducerID != actorUserID {
		return NewHTTPError(http.StatusForbidden, "no autorizado")
	}

	err = u.productRepo.Update(ctx, model.Product{
		ID:            productID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		Unit:          in.Unit,
		ImageURL:      in.ImageURL,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		IsActive:      in.IsActive,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "producto no encontrado")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, actorUserID int64, actorRoleID int64, productID int64) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id_producto inválido")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "producto no encontrado")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if actorRoleID != model.RoleAdminID && p.ProducerID != actorUserID {
		return NewHTTPError(http.StatusForbidden, "no autorizado")
	}

	err = u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "producto no encontrado")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return nil
}

// 在庫の補充・調整。現在値との差分を履歴に残す。
func (u *ProductUsecase) Restock(ctx context.Context, actorUserID int64, actorRoleID int64, productID int64, newStock int64, reason string) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id_producto inválido")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "cantidad inválida")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		inv, err := r.Inventory().FindByProductID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "inventario no encontrado")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if actorRoleID != model.RoleAdminID && inv.ProducerID != actorUserID {
			return NewHTTPError(http.StatusForbidden, "no autorizado")
		}

		if err := r.Inventory().SetQuantity(ctx, productID, newStock); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if err := r.Inventory().CreateMovement(ctx, model.InventoryMovement{
			ProductID: productID,
			Type:      model.MovementRestock,
			Delta:     newStock - inv.AvailableQuantity,
			Reason:    strings.TrimSpace(reason),
			CreatedAt: time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		return nil
	})
}
