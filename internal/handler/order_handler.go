package handler

import (
	"net/http"
	"strconv"

	"agrosoft/internal/config"
	"agrosoft/internal/domain/model"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/pedidos のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	UserID             int64  `json:"id_usuario"`
	PaymentMethodID    int64  `json:"id_metodo_pago" validate:"required,gt=0"`
	ShippingAddress    string `json:"direccion_envio" validate:"required"`
	ShippingCity       string `json:"ciudad_envio"`
	ShippingPostalCode string `json:"codigo_postal_envio"`
	Notes              string `json:"notas_pedido"`
	DeclaredTotal      int64  `json:"total_pedido" validate:"gte=0"`
}

//motivo_cancelacionは任意
type OrderCancelRequest struct {
	Reason string `json:"motivo_cancelacion"`
}

type OrderStatusRequest struct {
	StatusID int64 `json:"id_estado" validate:"required,gt=0"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/pedidos")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/crear", h.create)
	g.GET("/usuario/:id_usuario", h.listByUser)
	g.GET("/:id_pedido", h.detail)
	g.PUT("/cancelar/:id_pedido", h.cancel)
	g.PUT("/estado/:id_pedido", h.updateStatus, middleware.AdminOnly())
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	//bodyのid_usuarioはtokenの本人と一致する場合だけ受け付ける
	if req.UserID != 0 && req.UserID != userID {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "el usuario no coincide con el token"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		PaymentMethodID:    req.PaymentMethodID,
		ShippingAddress:    req.ShippingAddress,
		ShippingCity:       req.ShippingCity,
		ShippingPostalCode: req.ShippingPostalCode,
		Notes:              req.Notes,
		DeclaredTotal:      req.DeclaredTotal,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *OrderHandler) listByUser(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}
	roleID, _ := getRoleIDFromContext(c)

	targetID, err := strconv.ParseInt(c.Param("id_usuario"), 10, 64)
	if err != nil || targetID <= 0 {
		return writeBadRequest(c, "id_usuario inválido")
	}

	//他人の一覧は管理者だけ
	if targetID != userID && roleID != model.RoleAdminID {
		return c.JSON(http.StatusForbidden, ErrorResponse{Success: false, Error: "permisos insuficientes"})
	}

	out, err := h.uc.ListUserOrders(c.Request().Context(), targetID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}
	roleID, _ := getRoleIDFromContext(c)

	orderID, err := strconv.ParseInt(c.Param("id_pedido"), 10, 64)
	if err != nil || orderID <= 0 {
		return writeBadRequest(c, "id_pedido inválido")
	}

	out, err := h.uc.GetOrderDetail(c.Request().Context(), userID, roleID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}
	roleID, _ := getRoleIDFromContext(c)

	orderID, err := strconv.ParseInt(c.Param("id_pedido"), 10, 64)
	if err != nil || orderID <= 0 {
		return writeBadRequest(c, "id_pedido inválido")
	}

	var req OrderCancelRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CancelOrder(c.Request().Context(), userID, roleID, orderID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	roleID, ok := getRoleIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	orderID, err := strconv.ParseInt(c.Param("id_pedido"), 10, 64)
	if err != nil || orderID <= 0 {
		return writeBadRequest(c, "id_pedido inválido")
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.AdminUpdateStatus(c.Request().Context(), roleID, orderID, req.StatusID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}
