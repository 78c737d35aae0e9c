package usecase

import (
	"context"
	"fmt"
	"net/http"

	repo "agrosoft/internal/repository"
)

// CartUsecase は /api/carrito の業務ロジックです。
// 在庫の読みはすべてInventoryRepositoryを通す（Productに在庫は無い）。
type CartUsecase struct {
	cartRepo      repo.CartRepository
	cartItemRepo  repo.CartItemRepository
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

type CartItemResponse struct {
	ID          int64  `json:"id_detalle_carrito"`
	ProductID   int64  `json:"id_producto"`
	ProductName string `json:"nombre_producto"`
	UnitPrice   int64  `json:"precio_unitario"`
	Quantity    int64  `json:"cantidad"`
	Subtotal    int64  `json:"subtotal"`
}

type CartResponse struct {
	CartID int64              `json:"id_carrito"`
	Status string             `json:"estado"`
	Items  []CartItemResponse `json:"items"`
	Total  int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければACTIVOを作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	return u.buildCartResponse(ctx, cart.ID, string(cart.Status))
}

// AddToCart はカートに追加（同一商品は数量加算、単価は最初の追加時点のまま）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "id_producto inválido")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "cantidad inválida")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	//商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "producto no disponible")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "producto no disponible")
	}

	//既存数量＋追加分が現在の在庫を超えないか
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	var existingQty int64 = 0
	for _, it := range items {
		if it.ProductID == in.ProductID {
			existingQty = it.Quantity
			break
		}
	}

	available, err := u.availableStock(ctx, in.ProductID)
	if err != nil {
		return CartResponse{}, err
	}
	if existingQty+in.Quantity > available {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
			"stock insuficiente para %s: disponible %d", p.Name, available,
		))
	}

	//Upsert（同一商品は加算、単価は追加時点のスナップショット）
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity, p.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	if err := u.cartRepo.Touch(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	return u.buildCartResponse(ctx, cart.ID, string(cart.Status))
}

// 数量変更。0は明細削除、負は拒否、在庫超過も拒否。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	if in.Quantity < 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "cantidad inválida")
	}

	//数量0は「行を消す」の意味
	if in.Quantity == 0 {
		return u.DeleteCartItem(ctx, userID, cartItemID)
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "no encontrado")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "no encontrado")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	//リクエスト時点の在庫で上限チェック
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "producto no disponible")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "producto no disponible")
	}

	available, err := u.availableStock(ctx, item.ProductID)
	if err != nil {
		return CartResponse{}, err
	}
	if in.Quantity > available {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
			"stock insuficiente para %s: disponible %d", p.Name, available,
		))
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "no encontrado")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if err := u.cartRepo.Touch(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return u.buildCartResponse(ctx, cart.ID, string(cart.Status))
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "id inválido")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "no encontrado")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "no encontrado")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if err := u.cartRepo.Touch(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return u.buildCartResponse(ctx, cart.ID, string(cart.Status))
}

// カートを空にする
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "no hay carrito activo")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if err := u.cartRepo.Touch(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	return u.buildCartResponse(ctx, cart.ID, string(cart.Status))
}

func (u *CartUsecase) availableStock(ctx context.Context, productID int64) (int64, error) {
	inv, err := u.inventoryRepo.FindByProductID(ctx, productID)
	if err == repo.ErrNotFound {
		//在庫レコードが無い商品は売れない
		return 0, nil
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return inv.AvailableQuantity, nil
}

// cartIDの明細をまとめてCartResponseを作る。
// subtotalは保存済みの値（追加時点の単価×数量）をそのまま返す。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64, status string) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		respItems = append(respItems, CartItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: p.Name,
			UnitPrice:   it.UnitPriceAtAdd,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})

		total += it.Subtotal
	}

	return CartResponse{CartID: cartID, Status: status, Items: respItems, Total: total}, nil
}
