package handler

import (
	"net/http"
	"strconv"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/productos のHTTP。読みは公開、書きはProductor/Administrador。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductSaveRequest struct {
	Name          string `json:"nombre_producto" validate:"required"`
	Description   string `json:"descripcion"`
	Price         int64  `json:"precio" validate:"required,gt=0"`
	Unit          string `json:"unidad_medida"`
	ImageURL      string `json:"imagen_url"`
	CategoryID    int64  `json:"id_categoria" validate:"required,gt=0"`
	SubcategoryID *int64 `json:"id_subcategoria"`
	IsActive      *bool  `json:"activo"`
	InitialStock  int64  `json:"stock_inicial"`
}

type RestockRequest struct {
	Stock  int64  `json:"cantidad_disponible" validate:"gte=0"`
	Reason string `json:"motivo"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/productos", h.list)
	e.GET("/api/productos/:id_producto", h.detail)

	g := e.Group("/api/productos")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("", h.create)
	g.PUT("/:id_producto", h.update)
	g.DELETE("/:id_producto", h.delete)
	g.PUT("/stock/:id_producto", h.restock)
}

func (h *ProductHandler) list(c echo.Context) error {
	in := usecase.ListProductsInput{Page: 1, Limit: 20}

	if v := c.QueryParam("pagina"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return writeBadRequest(c, "pagina inválida")
		}
		in.Page = p
	}
	if v := c.QueryParam("limite"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return writeBadRequest(c, "limite inválido")
		}
		in.Limit = l
	}
	in.Q = c.QueryParam("q")
	in.Sort = c.QueryParam("orden")

	if v := c.QueryParam("id_categoria"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return writeBadRequest(c, "id_categoria inválida")
		}
		in.CategoryID = &id
	}
	if v := c.QueryParam("precio_min"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return writeBadRequest(c, "precio_min inválido")
		}
		in.MinPrice = &p
	}
	if v := c.QueryParam("precio_max"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return writeBadRequest(c, "precio_max inválido")
		}
		in.MaxPrice = &p
	}

	out, err := h.uc.ListPublicProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id_producto"), 10, 64)
	if err != nil || productID <= 0 {
		return writeBadRequest(c, "id_producto inválido")
	}

	out, err := h.uc.GetProductDetail(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}
	roleID, _ := getRoleIDFromContext(c)

	var req ProductSaveRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), userID, roleID, toCreateProductInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}
	roleID, _ := getRoleIDFromContext(c)

	productID, err := strconv.ParseInt(c.Param("id_producto"), 10, 64)
	if err != nil || productID <= 0 {
		return writeBadRequest(c, "id_producto inválido")
	}

	var req ProductSaveRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.UpdateProduct(c.Request().Context(), userID, roleID, productID, toCreateProductInput(req)); err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, map[string]string{"mensaje": "producto actualizado"})
}

func (h *ProductHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}
	roleID, _ := getRoleIDFromContext(c)

	productID, err := strconv.ParseInt(c.Param("id_producto"), 10, 64)
	if err != nil || productID <= 0 {
		return writeBadRequest(c, "id_producto inválido")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, roleID, productID); err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, map[string]string{"mensaje": "producto eliminado"})
}

func (h *ProductHandler) restock(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}
	roleID, _ := getRoleIDFromContext(c)

	productID, err := strconv.ParseInt(c.Param("id_producto"), 10, 64)
	if err != nil || productID <= 0 {
		return writeBadRequest(c, "id_producto inválido")
	}

	var req RestockRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Restock(c.Request().Context(), userID, roleID, productID, req.Stock, req.Reason); err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, map[string]string{"mensaje": "stock actualizado"})
}

func toCreateProductInput(req ProductSaveRequest) usecase.CreateProductInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Unit:          req.Unit,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		IsActive:      active,
		InitialStock:  req.InitialStock,
	}
}
