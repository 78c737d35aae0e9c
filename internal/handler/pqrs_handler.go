package handler

import (
	"net/http"
	"strconv"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/pqrs のHTTP
type PQRSHandler struct {
	uc *usecase.PQRSUsecase
}

func NewPQRSHandler(uc *usecase.PQRSUsecase) *PQRSHandler {
	return &PQRSHandler{uc: uc}
}

type PQRSCreateRequest struct {
	TypeID      int64  `json:"id_tipo" validate:"required,gt=0"`
	Subject     string `json:"asunto" validate:"required"`
	Description string `json:"descripcion" validate:"required"`
}

type PQRSRespondRequest struct {
	Response string `json:"respuesta" validate:"required"`
}

func (h *PQRSHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/pqrs")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("/usuario", h.listMine)
	g.GET("", h.listAll, middleware.AdminOnly())
	g.PUT("/responder/:id_pqrs", h.respond, middleware.AdminOnly())
}

func (h *PQRSHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	var req PQRSCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreatePQRSInput{
		TypeID:      req.TypeID,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *PQRSHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *PQRSHandler) listAll(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	out, err := h.uc.ListAll(c.Request().Context(), roleID, c.QueryParam("estado"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, out)
}

func (h *PQRSHandler) respond(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	pqrsID, err := strconv.ParseInt(c.Param("id_pqrs"), 10, 64)
	if err != nil || pqrsID <= 0 {
		return writeBadRequest(c, "id_pqrs inválido")
	}

	var req PQRSRespondRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Respond(c.Request().Context(), roleID, pqrsID, req.Response); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, map[string]string{"mensaje": "respuesta registrada"})
}
