package handler

import (
	"net/http"
	"strconv"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/categorias とルックアップ一覧のHTTP
type CategoryHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCategoryHandler(uc *usecase.CatalogUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CategorySaveRequest struct {
	Name        string `json:"nombre_categoria" validate:"required"`
	Description string `json:"descripcion"`
}

type SubcategorySaveRequest struct {
	Name string `json:"nombre_subcategoria" validate:"required"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/categorias", h.list)
	e.GET("/api/categorias/:id_categoria/subcategorias", h.listSubcategories)

	//ルックアップは公開（登録フォームやチェックアウトで使う）
	e.GET("/api/metodos-pago", h.listPaymentMethods)
	e.GET("/api/estados-pedido", h.listOrderStatuses)
	e.GET("/api/roles", h.listRoles)
	e.GET("/api/tipos-pqrs", h.listPQRSTypes)

	g := e.Group("/api/categorias")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminOnly())
	g.POST("", h.create)
	g.PUT("/:id_categoria", h.update)
	g.DELETE("/:id_categoria", h.delete)
	g.POST("/:id_categoria/subcategorias", h.createSubcategory)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *CategoryHandler) listSubcategories(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("id_categoria"), 10, 64)
	if err != nil || categoryID <= 0 {
		return writeBadRequest(c, "id_categoria inválida")
	}

	out, err := h.uc.ListSubcategories(c.Request().Context(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *CategoryHandler) create(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	var req CategorySaveRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), roleID, req.Name, req.Description)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, out)
}

func (h *CategoryHandler) update(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	categoryID, err := strconv.ParseInt(c.Param("id_categoria"), 10, 64)
	if err != nil || categoryID <= 0 {
		return writeBadRequest(c, "id_categoria inválida")
	}

	var req CategorySaveRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.UpdateCategory(c.Request().Context(), roleID, categoryID, req.Name, req.Description); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]string{"mensaje": "categoría actualizada"})
}

func (h *CategoryHandler) delete(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	categoryID, err := strconv.ParseInt(c.Param("id_categoria"), 10, 64)
	if err != nil || categoryID <= 0 {
		return writeBadRequest(c, "id_categoria inválida")
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), roleID, categoryID); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]string{"mensaje": "categoría eliminada"})
}

func (h *CategoryHandler) createSubcategory(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	categoryID, err := strconv.ParseInt(c.Param("id_categoria"), 10, 64)
	if err != nil || categoryID <= 0 {
		return writeBadRequest(c, "id_categoria inválida")
	}

	var req SubcategorySaveRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreateSubcategory(c.Request().Context(), roleID, categoryID, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, out)
}

func (h *CategoryHandler) listPaymentMethods(c echo.Context) error {
	out, err := h.uc.ListPaymentMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *CategoryHandler) listOrderStatuses(c echo.Context) error {
	out, err := h.uc.ListOrderStatuses(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *CategoryHandler) listRoles(c echo.Context) error {
	out, err := h.uc.ListRoles(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *CategoryHandler) listPQRSTypes(c echo.Context) error {
	out, err := h.uc.ListPQRSTypes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}
