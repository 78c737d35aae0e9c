package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"
	"agrosoft/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, statusID int64) error {
	args := m.Called(ctx, orderID, statusID)
	return args.Error(0)
}

func (m *OrderRepoMock) Cancel(ctx context.Context, orderID int64, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderIDs)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type OrderCartRepoMock struct{ mock.Mock }

func (m *OrderCartRepoMock) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderCartRepoMock) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *OrderCartRepoMock) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}

func (m *OrderCartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *OrderCartRepoMock) Touch(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type OrderCartItemRepoMock struct{ mock.Mock }

func (m *OrderCartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *OrderCartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64, unitPriceAtAdd int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderCartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderCartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderCartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderCartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	panic("not used in OrderUsecase tests")
}

type OrderInventoryRepoMock struct{ mock.Mock }

func (m *OrderInventoryRepoMock) FindByProductID(ctx context.Context, productID int64) (model.Inventory, error) {
	args := m.Called(ctx, productID)
	inv, _ := args.Get(0).(model.Inventory)
	return inv, args.Error(1)
}

func (m *OrderInventoryRepoMock) Create(ctx context.Context, inv model.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *OrderInventoryRepoMock) SetQuantity(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *OrderInventoryRepoMock) DecreaseIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *OrderInventoryRepoMock) Increase(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *OrderInventoryRepoMock) CreateMovement(ctx context.Context, mv model.InventoryMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

type OrderProductRepoMock struct{ mock.Mock }

func (m *OrderProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *OrderProductRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *OrderProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *OrderProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *OrderProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type OrderDiscountRepoMock struct{ mock.Mock }

func (m *OrderDiscountRepoMock) Create(ctx context.Context, d model.Discount) (model.Discount, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderDiscountRepoMock) LinkProducts(ctx context.Context, discountID int64, productIDs []int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderDiscountRepoMock) ListActive(ctx context.Context, now time.Time) ([]model.Discount, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderDiscountRepoMock) ActiveForProduct(ctx context.Context, productID int64, now time.Time) (model.Discount, bool, error) {
	args := m.Called(ctx, productID, now)
	d, _ := args.Get(0).(model.Discount)
	return d, args.Bool(1), args.Error(2)
}

func (m *OrderDiscountRepoMock) ListOffers(ctx context.Context, now time.Time) ([]repo.OfferRow, error) {
	panic("not used in OrderUsecase tests")
}

type OrderLookupRepoMock struct{ mock.Mock }

func (m *OrderLookupRepoMock) OrderStatusName(ctx context.Context, statusID int64) (string, error) {
	args := m.Called(ctx, statusID)
	return args.String(0), args.Error(1)
}

func (m *OrderLookupRepoMock) PaymentMethodName(ctx context.Context, methodID int64) (string, error) {
	args := m.Called(ctx, methodID)
	return args.String(0), args.Error(1)
}

func (m *OrderLookupRepoMock) ListOrderStatuses(ctx context.Context) ([]model.OrderStatus, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderLookupRepoMock) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderLookupRepoMock) ListRoles(ctx context.Context) ([]model.Role, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderLookupRepoMock) ListPQRSTypes(ctx context.Context) ([]model.PQRSType, error) {
	panic("not used in OrderUsecase tests")
}

// =====================
// Txまわりのスタブ
// =====================

type txReposStub struct {
	orders    *OrderRepoMock
	items     *OrderItemRepoMock
	carts     *OrderCartRepoMock
	cartItems *OrderCartItemRepoMock
	inventory *OrderInventoryRepoMock
	products  *OrderProductRepoMock
	discounts *OrderDiscountRepoMock
	lookups   *OrderLookupRepoMock
}

func (s *txReposStub) Orders() repo.OrderRepository         { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository { return s.items }
func (s *txReposStub) Carts() repo.CartRepository           { return s.carts }
func (s *txReposStub) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s *txReposStub) Inventory() repo.InventoryRepository  { return s.inventory }
func (s *txReposStub) Products() repo.ProductRepository     { return s.products }
func (s *txReposStub) Discounts() repo.DiscountRepository   { return s.discounts }
func (s *txReposStub) Lookups() repo.LookupRepository       { return s.lookups }

// クロージャをそのまま実行するTransactionManager。
// fnがエラーを返したら何も確定しない想定（本物はロールバック）。
type txManagerStub struct {
	repos *txReposStub
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

func newTxStub() (*txReposStub, *txManagerStub) {
	r := &txReposStub{
		orders:    new(OrderRepoMock),
		items:     new(OrderItemRepoMock),
		carts:     new(OrderCartRepoMock),
		cartItems: new(OrderCartItemRepoMock),
		inventory: new(OrderInventoryRepoMock),
		products:  new(OrderProductRepoMock),
		discounts: new(OrderDiscountRepoMock),
		lookups:   new(OrderLookupRepoMock),
	}
	return r, &txManagerStub{repos: r}
}

func assertHTTPError(t *testing.T, err error, wantStatus int, contains string) {
	t.Helper()

	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, wantStatus, he.Status)
	assert.Contains(t, he.Message, contains)
}

// =====================
// PlaceOrder
// =====================

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	//カート：パパ 2×2000 + トマト 3×1500 = 8500
	r.carts.On("FindActiveByUserID", mock.Anything, int64(5)).
		Return(model.Cart{ID: 10, UserID: 5, Status: model.CartStatusActive}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 100, Quantity: 2, UnitPriceAtAdd: 2000, Subtotal: 4000},
		{ID: 2, CartID: 10, ProductID: 200, Quantity: 3, UnitPriceAtAdd: 1500, Subtotal: 4500},
	}, nil)

	r.products.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "Papa criolla", IsActive: true}, nil)
	r.products.On("FindByID", mock.Anything, int64(200)).
		Return(model.Product{ID: 200, Name: "Tomate chonto", IsActive: true}, nil)

	r.inventory.On("DecreaseIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	r.inventory.On("DecreaseIfEnough", mock.Anything, int64(200), int64(3)).Return(true, nil)
	r.inventory.On("CreateMovement", mock.Anything, mock.Anything).Return(nil)

	r.discounts.On("ActiveForProduct", mock.Anything, int64(100), mock.Anything).
		Return(model.Discount{}, false, nil)
	r.discounts.On("ActiveForProduct", mock.Anything, int64(200), mock.Anything).
		Return(model.Discount{}, false, nil)

	r.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 5 &&
			o.StatusID == model.OrderStatusPendingID &&
			o.Total == 8500 &&
			strings.HasPrefix(o.TrackingNumber, "AGRO-")
	})).Return(int64(77), nil)

	r.items.On("CreateBulk", mock.Anything, int64(77), mock.MatchedBy(func(items []model.OrderItem) bool {
		//カート明細のスナップショットがそのまま写っていること
		return len(items) == 2 &&
			items[0].UnitPriceAtOrder == 2000 && items[0].Subtotal == 4000 &&
			items[1].UnitPriceAtOrder == 1500 && items[1].Subtotal == 4500
	})).Return(nil)

	r.carts.On("UpdateStatus", mock.Anything, int64(10), model.CartStatusCompleted).Return(nil)
	r.carts.On("Clear", mock.Anything, int64(10)).Return(nil)

	r.lookups.On("PaymentMethodName", mock.Anything, int64(1)).Return("Efectivo", nil)
	r.lookups.On("OrderStatusName", mock.Anything, model.OrderStatusPendingID).Return("Pendiente", nil)

	out, err := uc.PlaceOrder(ctx, 5, usecase.PlaceOrderInput{
		PaymentMethodID: 1,
		ShippingAddress: "Calle 10 #4-32",
		ShippingCity:    "Popayán",
		DeclaredTotal:   8500,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(77), out.ID)
	assert.Equal(t, int64(8500), out.Total)
	assert.Equal(t, "Pendiente", out.Status)
	assert.Equal(t, "Efectivo", out.PaymentMethod)
	assert.True(t, strings.HasPrefix(out.TrackingNumber, "AGRO-"))
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(2000), out.Items[0].UnitPrice)

	r.orders.AssertExpectations(t)
	r.items.AssertExpectations(t)
	r.carts.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_AppliesActiveDiscount(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.carts.On("FindActiveByUserID", mock.Anything, int64(5)).
		Return(model.Cart{ID: 10, UserID: 5, Status: model.CartStatusActive}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 100, Quantity: 2, UnitPriceAtAdd: 2000, Subtotal: 4000},
	}, nil)
	r.products.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "Papa criolla", IsActive: true}, nil)
	r.inventory.On("DecreaseIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	r.inventory.On("CreateMovement", mock.Anything, mock.Anything).Return(nil)

	//10%割引 → 4000-400=3600
	r.discounts.On("ActiveForProduct", mock.Anything, int64(100), mock.Anything).
		Return(model.Discount{ID: 3, Percentage: 10}, true, nil)

	r.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Total == 3600
	})).Return(int64(88), nil)
	r.items.On("CreateBulk", mock.Anything, int64(88), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 && items[0].DiscountApplied == 400 && items[0].Subtotal == 4000
	})).Return(nil)
	r.carts.On("UpdateStatus", mock.Anything, int64(10), model.CartStatusCompleted).Return(nil)
	r.carts.On("Clear", mock.Anything, int64(10)).Return(nil)
	r.lookups.On("PaymentMethodName", mock.Anything, int64(1)).Return("Tarjeta", nil)
	r.lookups.On("OrderStatusName", mock.Anything, model.OrderStatusPendingID).Return("Pendiente", nil)

	out, err := uc.PlaceOrder(ctx, 5, usecase.PlaceOrderInput{
		PaymentMethodID: 1,
		ShippingAddress: "Calle 10 #4-32",
		ShippingCity:    "Popayán",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3600), out.Total)
	assert.Equal(t, int64(400), out.Items[0].DiscountApplied)
}

func TestOrderUsecase_PlaceOrder_InsufficientStockNamesProduct(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.carts.On("FindActiveByUserID", mock.Anything, int64(5)).
		Return(model.Cart{ID: 10, UserID: 5, Status: model.CartStatusActive}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 200, Quantity: 3, UnitPriceAtAdd: 1500, Subtotal: 4500},
	}, nil)
	r.products.On("FindByID", mock.Anything, int64(200)).
		Return(model.Product{ID: 200, Name: "Tomate chonto", IsActive: true}, nil)

	//在庫1しかないのに3要求
	r.inventory.On("DecreaseIfEnough", mock.Anything, int64(200), int64(3)).Return(false, nil)
	r.inventory.On("FindByProductID", mock.Anything, int64(200)).
		Return(model.Inventory{ProductID: 200, AvailableQuantity: 1}, nil)

	_, err := uc.PlaceOrder(ctx, 5, usecase.PlaceOrderInput{
		PaymentMethodID: 1,
		ShippingAddress: "Calle 10 #4-32",
		ShippingCity:    "Popayán",
	})

	assertHTTPError(t, err, http.StatusBadRequest, "stock insuficiente para Tomate chonto")
	assertHTTPError(t, err, http.StatusBadRequest, "disponible 1")

	//注文もカート消費も起きない
	r.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	r.carts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_LineInsertFailureAbortsOrder(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.carts.On("FindActiveByUserID", mock.Anything, int64(5)).
		Return(model.Cart{ID: 10, UserID: 5, Status: model.CartStatusActive}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 100, Quantity: 2, UnitPriceAtAdd: 2000, Subtotal: 4000},
	}, nil)
	r.products.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "Papa criolla", IsActive: true}, nil)
	r.inventory.On("DecreaseIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	r.inventory.On("CreateMovement", mock.Anything, mock.Anything).Return(nil)
	r.discounts.On("ActiveForProduct", mock.Anything, int64(100), mock.Anything).
		Return(model.Discount{}, false, nil)
	r.orders.On("Create", mock.Anything, mock.Anything).Return(int64(77), nil)

	//在庫減算の後で明細insertが落ちるケース
	r.items.On("CreateBulk", mock.Anything, int64(77), mock.Anything).
		Return(errors.New("insert failed"))

	_, err := uc.PlaceOrder(ctx, 5, usecase.PlaceOrderInput{
		PaymentMethodID: 1,
		ShippingAddress: "Calle 10 #4-32",
		ShippingCity:    "Popayán",
	})

	//エラーがWithinTxの外へ伝播すること（本物のマネージャはこれでロールバックする）
	assertHTTPError(t, err, http.StatusInternalServerError, "error de base de datos")
	r.carts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	r.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.carts.On("FindActiveByUserID", mock.Anything, int64(5)).
		Return(model.Cart{ID: 10, UserID: 5, Status: model.CartStatusActive}, nil)
	r.cartItems.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	_, err := uc.PlaceOrder(ctx, 5, usecase.PlaceOrderInput{
		PaymentMethodID: 1,
		ShippingAddress: "Calle 10 #4-32",
		ShippingCity:    "Popayán",
	})

	assertHTTPError(t, err, http.StatusBadRequest, "el carrito está vacío")
}

func TestOrderUsecase_PlaceOrder_NoActiveCart(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.carts.On("FindActiveByUserID", mock.Anything, int64(5)).
		Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.PlaceOrder(ctx, 5, usecase.PlaceOrderInput{
		PaymentMethodID: 1,
		ShippingAddress: "Calle 10 #4-32",
		ShippingCity:    "Popayán",
	})

	assertHTTPError(t, err, http.StatusNotFound, "no hay carrito activo")
}

func TestOrderUsecase_PlaceOrder_Unauthenticated(t *testing.T) {
	_, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.PlaceOrder(context.Background(), 0, usecase.PlaceOrderInput{
		PaymentMethodID: 1,
		ShippingAddress: "Calle 10 #4-32",
		ShippingCity:    "Popayán",
	})

	assertHTTPError(t, err, http.StatusUnauthorized, "no autenticado")
}

// =====================
// CancelOrder
// =====================

func TestOrderUsecase_CancelOrder_RestoresStock(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, UserID: 5, StatusID: model.OrderStatusPendingID, TrackingNumber: "AGRO-20260830-ABCD1234",
	}, nil)
	r.orders.On("Cancel", mock.Anything, int64(77), "cambio de planes").Return(nil)
	r.items.On("ListByOrderID", mock.Anything, int64(77)).Return([]model.OrderItem{
		{OrderID: 77, ProductID: 100, Quantity: 2},
		{OrderID: 77, ProductID: 200, Quantity: 3},
	}, nil)

	//明細ごとに在庫を戻す
	r.inventory.On("Increase", mock.Anything, int64(100), int64(2)).Return(nil)
	r.inventory.On("Increase", mock.Anything, int64(200), int64(3)).Return(nil)
	r.inventory.On("CreateMovement", mock.Anything, mock.MatchedBy(func(mv model.InventoryMovement) bool {
		return mv.Type == model.MovementCancelRestore && mv.Delta > 0
	})).Return(nil)

	r.lookups.On("OrderStatusName", mock.Anything, model.OrderStatusCancelledID).Return("Cancelado", nil)

	out, err := uc.CancelOrder(ctx, 5, model.RoleCustomerID, 77, "cambio de planes")

	assert.NoError(t, err)
	assert.Equal(t, "Cancelado", out.NewStatus)
	assert.Equal(t, "AGRO-20260830-ABCD1234", out.TrackingNumber)
	r.inventory.AssertExpectations(t)
}

func TestOrderUsecase_CancelOrder_EmptyReasonAccepted(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, UserID: 5, StatusID: model.OrderStatusPendingID, TrackingNumber: "AGRO-20260830-ABCD1234",
	}, nil)
	r.orders.On("Cancel", mock.Anything, int64(77), "").Return(nil)
	r.items.On("ListByOrderID", mock.Anything, int64(77)).Return([]model.OrderItem{
		{OrderID: 77, ProductID: 100, Quantity: 2},
	}, nil)
	r.inventory.On("Increase", mock.Anything, int64(100), int64(2)).Return(nil)
	r.inventory.On("CreateMovement", mock.Anything, mock.Anything).Return(nil)
	r.lookups.On("OrderStatusName", mock.Anything, model.OrderStatusCancelledID).Return("Cancelado", nil)

	out, err := uc.CancelOrder(ctx, 5, model.RoleCustomerID, 77, "")

	assert.NoError(t, err)
	assert.Equal(t, "Cancelado", out.NewStatus)
	assert.Equal(t, "", out.Reason)
	r.orders.AssertExpectations(t)
}

func TestOrderUsecase_CancelOrder_OnlyPending(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, UserID: 5, StatusID: model.OrderStatusShippedID,
	}, nil)

	_, err := uc.CancelOrder(ctx, 5, model.RoleCustomerID, 77, "tarde")

	assertHTTPError(t, err, http.StatusBadRequest, "ya no se puede cancelar")
	r.orders.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	r.inventory.AssertNotCalled(t, "Increase", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_CancelOrder_OtherUsersOrderHidden(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, UserID: 99, StatusID: model.OrderStatusPendingID,
	}, nil)

	_, err := uc.CancelOrder(ctx, 5, model.RoleCustomerID, 77, "no es mío")

	assertHTTPError(t, err, http.StatusNotFound, "pedido no encontrado")
}

// =====================
// ListUserOrders / AdminUpdateStatus
// =====================

func TestOrderUsecase_ListUserOrders_BatchesItemQuery(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.orders.On("ListByUserID", mock.Anything, int64(5)).Return([]model.Order{
		{ID: 1, UserID: 5, StatusID: 1, PaymentMethodID: 1},
		{ID: 2, UserID: 5, StatusID: 3, PaymentMethodID: 2},
	}, nil)

	//明細は1回のIN句クエリ
	r.items.On("ListByOrderIDs", mock.Anything, []int64{1, 2}).Return([]model.OrderItem{
		{OrderID: 1, ProductID: 100, Quantity: 2, UnitPriceAtOrder: 2000, Subtotal: 4000},
		{OrderID: 2, ProductID: 100, Quantity: 1, UnitPriceAtOrder: 2000, Subtotal: 2000},
		{OrderID: 2, ProductID: 200, Quantity: 1, UnitPriceAtOrder: 1500, Subtotal: 1500},
	}, nil)

	r.lookups.On("OrderStatusName", mock.Anything, int64(1)).Return("Pendiente", nil)
	r.lookups.On("OrderStatusName", mock.Anything, int64(3)).Return("Entregado", nil)
	r.lookups.On("PaymentMethodName", mock.Anything, int64(1)).Return("Efectivo", nil)
	r.lookups.On("PaymentMethodName", mock.Anything, int64(2)).Return("Tarjeta", nil)
	r.products.On("FindByIDs", mock.Anything, []int64{100, 200}).Return([]model.Product{
		{ID: 100, Name: "Papa criolla"},
		{ID: 200, Name: "Tomate chonto"},
	}, nil)

	out, err := uc.ListUserOrders(ctx, 5)

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Len(t, out[0].Items, 1)
	assert.Len(t, out[1].Items, 2)
	assert.Equal(t, "Entregado", out[1].Status)
	r.items.AssertNumberOfCalls(t, "ListByOrderIDs", 1)
	r.items.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_AdminUpdateStatus_ForwardOnly(t *testing.T) {
	ctx := context.Background()
	r, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	r.orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, UserID: 5, StatusID: model.OrderStatusDeliveredID, PaymentMethodID: 1,
	}, nil)

	//Entregadoからはどこへも動けない
	_, err := uc.AdminUpdateStatus(ctx, model.RoleAdminID, 77, model.OrderStatusShippedID)
	assertHTTPError(t, err, http.StatusBadRequest, "transición de estado inválida")

	r.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_AdminUpdateStatus_RequiresAdmin(t *testing.T) {
	_, tx := newTxStub()
	uc := usecase.NewOrderUsecase(tx)

	_, err := uc.AdminUpdateStatus(context.Background(), model.RoleCustomerID, 77, model.OrderStatusShippedID)
	assertHTTPError(t, err, http.StatusForbidden, "solo administradores")
}
