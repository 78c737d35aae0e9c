package handler

import (
	"net/http"
	"strconv"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/carrito のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID int64 `json:"id_producto" validate:"required,gt=0"`
	Quantity  int64 `json:"cantidad" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"cantidad"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/carrito")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("/agregar", h.addItem)
	g.PUT("/item/:id_item", h.updateItem)
	g.DELETE("/item/:id_item", h.deleteItem)
	g.DELETE("/vaciar", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	itemID, err := strconv.ParseInt(c.Param("id_item"), 10, 64)
	if err != nil || itemID <= 0 {
		return writeBadRequest(c, "id_item inválido")
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), userID, itemID, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	itemID, err := strconv.ParseInt(c.Param("id_item"), 10, 64)
	if err != nil || itemID <= 0 {
		return writeBadRequest(c, "id_item inválido")
	}

	out, err := h.uc.DeleteCartItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}
