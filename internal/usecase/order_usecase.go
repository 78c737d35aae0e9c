package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"github.com/google/uuid"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type PlaceOrderInput struct {
	PaymentMethodID    int64
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	Notes              string
	// クライアント申告の合計。保存時は明細から再計算する
	DeclaredTotal int64
}

type OrderItemOutput struct {
	ProductID       int64  `json:"id_producto"`
	ProductName     string `json:"nombre_producto"`
	ProductImageURL string `json:"imagen_url"`
	Quantity        int64  `json:"cantidad"`
	UnitPrice       int64  `json:"precio_unitario"`
	Subtotal        int64  `json:"subtotal"`
	DiscountApplied int64  `json:"descuento_aplicado"`
}

type OrderOutput struct {
	ID                 int64             `json:"id_pedido"`
	UserID             int64             `json:"id_usuario"`
	TrackingNumber     string            `json:"numero_seguimiento"`
	PaymentMethod      string            `json:"metodo_pago"`
	Status             string            `json:"estado"`
	ShippingAddress    string            `json:"direccion_envio"`
	ShippingCity       string            `json:"ciudad_envio"`
	ShippingPostalCode string            `json:"codigo_postal_envio"`
	Notes              string            `json:"notas_pedido"`
	Total              int64             `json:"total_pedido"`
	CancelReason       string            `json:"motivo_cancelacion,omitempty"`
	CreatedAt          time.Time         `json:"fecha_pedido"`
	Items              []OrderItemOutput `json:"detalles"`
}

type CancelOrderOutput struct {
	OrderID        int64  `json:"id_pedido"`
	TrackingNumber string `json:"numero_seguimiento"`
	NewStatus      string `json:"nuevo_estado"`
	Reason         string `json:"motivo"`
}

// 追跡番号。元はタイムスタンプ由来で衝突し得たので、uuidで一意にする。
func newTrackingNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("AGRO-%s-%s", now.Format("20060102"), suffix)
}

// PlaceOrder はカートを注文に変換する。
// 在庫チェック→注文・明細作成→カート消費までを1トランザクションで行い、
// 途中で失敗したら全部ロールバックする。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if in.PaymentMethodID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id_metodo_pago requerido")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "direccion_envio requerida")
	}
	if strings.TrimSpace(in.ShippingCity) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "ciudad_envio requerida")
	}
	if in.DeclaredTotal < 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "total_pedido inválido")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ACTIVOカート取得（無ければ404）
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "no hay carrito activo")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		//カート明細取得（空なら注文は作らない）
		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "el carrito está vacío")
		}

		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		itemOutputs := make([]OrderItemOutput, 0, len(cartItems))
		var total int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "producto no disponible")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}

			//在庫減算（compare-and-decrement、足りなければfalse）
			ok, err := r.Inventory().DecreaseIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}
			if !ok {
				//どの商品が足りないかを返す
				available := int64(0)
				if inv, invErr := r.Inventory().FindByProductID(ctx, ci.ProductID); invErr == nil {
					available = inv.AvailableQuantity
				}
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(
					"stock insuficiente para %s: disponible %d, solicitado %d",
					p.Name, available, ci.Quantity,
				))
			}

			if err := r.Inventory().CreateMovement(ctx, model.InventoryMovement{
				ProductID: ci.ProductID,
				Type:      model.MovementOrder,
				Delta:     -ci.Quantity,
				CreatedAt: now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}

			//期間内の割引だけ明細に記録する
			var discount int64 = 0
			if d, found, dErr := r.Discounts().ActiveForProduct(ctx, ci.ProductID, now); dErr == nil && found {
				discount = ci.Subtotal * d.Percentage / 100
			} else if dErr != nil {
				return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}

			//カート明細をそのまま写す（再価格付けしない）
			orderItems = append(orderItems, model.OrderItem{
				ProductID:        ci.ProductID,
				Quantity:         ci.Quantity,
				UnitPriceAtOrder: ci.UnitPriceAtAdd,
				Subtotal:         ci.Subtotal,
				DiscountApplied:  discount,
				CreatedAt:        now,
			})
			itemOutputs = append(itemOutputs, OrderItemOutput{
				ProductID:       ci.ProductID,
				ProductName:     p.Name,
				ProductImageURL: p.ImageURL,
				Quantity:        ci.Quantity,
				UnitPrice:       ci.UnitPriceAtAdd,
				Subtotal:        ci.Subtotal,
				DiscountApplied: discount,
			})

			total += ci.Subtotal - discount
		}

		// 注文作成（初期ステータスはPendiente=1）
		tracking := newTrackingNumber(now)
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:             userID,
			PaymentMethodID:    in.PaymentMethodID,
			StatusID:           model.OrderStatusPendingID,
			TrackingNumber:     tracking,
			ShippingAddress:    strings.TrimSpace(in.ShippingAddress),
			ShippingCity:       strings.TrimSpace(in.ShippingCity),
			ShippingPostalCode: strings.TrimSpace(in.ShippingPostalCode),
			Notes:              in.Notes,
			Total:              total,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		//カートをCOMPLETADOにして明細をクリア（再注文防止）
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCompleted); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		//表示名をルックアップしてレスポンスを組む
		payName, err := r.Lookups().PaymentMethodName(ctx, in.PaymentMethodID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "id_metodo_pago inválido")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}
		statusName, err := r.Lookups().OrderStatusName(ctx, model.OrderStatusPendingID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		out = OrderOutput{
			ID:                 orderID,
			UserID:             userID,
			TrackingNumber:     tracking,
			PaymentMethod:      payName,
			Status:             statusName,
			ShippingAddress:    strings.TrimSpace(in.ShippingAddress),
			ShippingCity:       strings.TrimSpace(in.ShippingCity),
			ShippingPostalCode: strings.TrimSpace(in.ShippingPostalCode),
			Notes:              in.Notes,
			Total:              total,
			CreatedAt:          now,
			Items:              itemOutputs,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListUserOrders はユーザーの注文一覧を返す。
// 明細は注文ごとに引かず、order_id IN (...) の1クエリで取ってメモリ上でまとめる。
func (u *OrderUsecase) ListUserOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		orderIDs := make([]int64, 0, len(orders))
		for _, o := range orders {
			orderIDs = append(orderIDs, o.ID)
		}

		//全明細を一括取得
		allItems, err := r.OrderItems().ListByOrderIDs(ctx, orderIDs)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		byOrder := make(map[int64][]model.OrderItem, len(orders))
		for _, it := range allItems {
			byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
		}

		names, err := u.buildNameCaches(ctx, r, orders, allItems)
		if err != nil {
			return err
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o, byOrder[o.ID], names))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// GetOrderDetail は注文1件を明細（商品表示フィールド込み）と共に返す。
// 本人か管理者だけが見られる。
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, requesterID int64, requesterRoleID int64, orderID int64) (OrderOutput, error) {
	if requesterID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id_pedido inválido")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "pedido no encontrado")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if o.UserID != requesterID && requesterRoleID != model.RoleAdminID {
			//存在は漏らさない
			return NewHTTPError(http.StatusNotFound, "pedido no encontrado")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		names, err := u.buildNameCaches(ctx, r, []model.Order{o}, items)
		if err != nil {
			return err
		}

		out = toOrderOutput(o, items, names)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder はPendiente(1)の注文だけをCancelado(4)へ移し、
// 明細分の在庫を同一トランザクション内で戻す。
func (u *OrderUsecase) CancelOrder(ctx context.Context, requesterID int64, requesterRoleID int64, orderID int64, reason string) (CancelOrderOutput, error) {
	if requesterID <= 0 {
		return CancelOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if orderID <= 0 {
		return CancelOrderOutput{}, NewHTTPError(http.StatusBadRequest, "id_pedido inválido")
	}

	var out CancelOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "pedido no encontrado")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if o.UserID != requesterID && requesterRoleID != model.RoleAdminID {
			return NewHTTPError(http.StatusNotFound, "pedido no encontrado")
		}

		//Pendiente以外はこの経路ではキャンセルできない
		if o.StatusID != model.OrderStatusPendingID {
			return NewHTTPError(http.StatusBadRequest, "el pedido ya no se puede cancelar")
		}

		if err := r.Orders().Cancel(ctx, orderID, strings.TrimSpace(reason)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "pedido no encontrado")
			}
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		//在庫戻し。ここで失敗したらステータス変更ごとロールバックする
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		now := time.Now()
		for _, it := range items {
			if err := r.Inventory().Increase(ctx, it.ProductID, it.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}
			if err := r.Inventory().CreateMovement(ctx, model.InventoryMovement{
				ProductID: it.ProductID,
				Type:      model.MovementCancelRestore,
				Delta:     it.Quantity,
				Reason:    strings.TrimSpace(reason),
				CreatedAt: now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}
		}

		statusName, err := r.Lookups().OrderStatusName(ctx, model.OrderStatusCancelledID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		out = CancelOrderOutput{
			OrderID:        o.ID,
			TrackingNumber: o.TrackingNumber,
			NewStatus:      statusName,
			Reason:         strings.TrimSpace(reason),
		}
		return nil
	})

	if err != nil {
		return CancelOrderOutput{}, err
	}
	return out, nil
}

// 前進遷移のみ許す（Pendiente→Enviado→Entregado）。
// キャンセルはCancelOrder経由のみ。
var allowedStatusTransitions = map[int64]int64{
	model.OrderStatusPendingID: model.OrderStatusShippedID,
	model.OrderStatusShippedID: model.OrderStatusDeliveredID,
}

func (u *OrderUsecase) AdminUpdateStatus(ctx context.Context, actorRoleID int64, orderID int64, newStatusID int64) (OrderOutput, error) {
	if actorRoleID != model.RoleAdminID {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id_pedido inválido")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "pedido no encontrado")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		if allowedStatusTransitions[o.StatusID] != newStatusID {
			return NewHTTPError(http.StatusBadRequest, "transición de estado inválida")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatusID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		o.StatusID = newStatusID
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
		}

		names, err := u.buildNameCaches(ctx, r, []model.Order{o}, items)
		if err != nil {
			return err
		}

		out = toOrderOutput(o, items, names)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 表示名の解決に使うキャッシュ。1リクエスト内で同じIDを引き直さない。
type nameCaches struct {
	statuses map[int64]string
	payments map[int64]string
	products map[int64]model.Product
}

func (u *OrderUsecase) buildNameCaches(ctx context.Context, r repo.TxRepos, orders []model.Order, items []model.OrderItem) (nameCaches, error) {
	n := nameCaches{
		statuses: map[int64]string{},
		payments: map[int64]string{},
		products: map[int64]model.Product{},
	}

	for _, o := range orders {
		if _, ok := n.statuses[o.StatusID]; !ok {
			name, err := r.Lookups().OrderStatusName(ctx, o.StatusID)
			if err != nil {
				return nameCaches{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}
			n.statuses[o.StatusID] = name
		}
		if _, ok := n.payments[o.PaymentMethodID]; !ok {
			name, err := r.Lookups().PaymentMethodName(ctx, o.PaymentMethodID)
			if err != nil {
				return nameCaches{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
			}
			n.payments[o.PaymentMethodID] = name
		}
	}

	productIDs := make([]int64, 0, len(items))
	seen := map[int64]bool{}
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			productIDs = append(productIDs, it.ProductID)
		}
	}

	products, err := r.Products().FindByIDs(ctx, productIDs)
	if err != nil {
		return nameCaches{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	for _, p := range products {
		n.products[p.ID] = p
	}

	return n, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem, names nameCaches) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		p := names.products[it.ProductID]
		outItems = append(outItems, OrderItemOutput{
			ProductID:       it.ProductID,
			ProductName:     p.Name,
			ProductImageURL: p.ImageURL,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPriceAtOrder,
			Subtotal:        it.Subtotal,
			DiscountApplied: it.DiscountApplied,
		})
	}

	return OrderOutput{
		ID:                 o.ID,
		UserID:             o.UserID,
		TrackingNumber:     o.TrackingNumber,
		PaymentMethod:      names.payments[o.PaymentMethodID],
		Status:             names.statuses[o.StatusID],
		ShippingAddress:    o.ShippingAddress,
		ShippingCity:       o.ShippingCity,
		ShippingPostalCode: o.ShippingPostalCode,
		Notes:              o.Notes,
		Total:              o.Total,
		CancelReason:       o.CancelReason,
		CreatedAt:          o.CreatedAt,
		Items:              outItems,
	}
}
