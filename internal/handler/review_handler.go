package handler

import (
	"net/http"
	"strconv"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/resenas のHTTP
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type ReviewCreateRequest struct {
	ProductID int64  `json:"id_producto" validate:"required,gt=0"`
	Rating    int64  `json:"calificacion" validate:"required,min=1,max=5"`
	Comment   string `json:"comentario"`
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/productos/:id_producto/resenas", h.listByProduct)

	g := e.Group("/api/resenas")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("", h.create)
}

func (h *ReviewHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	var req ReviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *ReviewHandler) listByProduct(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id_producto"), 10, 64)
	if err != nil || productID <= 0 {
		return writeBadRequest(c, "id_producto inválido")
	}

	out, err := h.uc.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}
