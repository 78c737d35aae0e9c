package handler

import (
	"net/http"
	"time"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/descuentos と /api/ofertas のHTTP
type DiscountHandler struct {
	uc *usecase.DiscountUsecase
}

func NewDiscountHandler(uc *usecase.DiscountUsecase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

type DiscountCreateRequest struct {
	Name       string  `json:"nombre_descuento" validate:"required"`
	Percentage int64   `json:"porcentaje" validate:"required,min=1,max=100"`
	StartsAt   string  `json:"fecha_inicio" validate:"required"`
	EndsAt     string  `json:"fecha_fin" validate:"required"`
	ProductIDs []int64 `json:"productos" validate:"required,min=1"`
}

func (h *DiscountHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/ofertas", h.listOffers)
	e.GET("/api/descuentos", h.listActive)

	g := e.Group("/api/descuentos")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminOnly())
	g.POST("", h.create)
}

func (h *DiscountHandler) create(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	var req DiscountCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	startsAt, err := time.Parse("2006-01-02", req.StartsAt)
	if err != nil {
		return writeBadRequest(c, "fecha_inicio inválida (YYYY-MM-DD)")
	}
	endsAt, err := time.Parse("2006-01-02", req.EndsAt)
	if err != nil {
		return writeBadRequest(c, "fecha_fin inválida (YYYY-MM-DD)")
	}

	out, err := h.uc.CreateDiscount(c.Request().Context(), roleID, usecase.CreateDiscountInput{
		Name:       req.Name,
		Percentage: req.Percentage,
		StartsAt:   startsAt,
		EndsAt:     endsAt.Add(24*time.Hour - time.Second), // fecha_finはその日いっぱい有効
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *DiscountHandler) listActive(c echo.Context) error {
	out, err := h.uc.ListActiveDiscounts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *DiscountHandler) listOffers(c echo.Context) error {
	out, err := h.uc.ListOfferProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}
