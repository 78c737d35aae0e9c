package handler

import (
	"net/http"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/auth と /api/usuarios のHTTP
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type RegisterRequest struct {
	Name     string `json:"nombre" validate:"required"`
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"contrasena" validate:"required,min=8"`
	Phone    string `json:"telefono"`
	RoleID   int64  `json:"id_rol"`
}

type LoginRequest struct {
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"contrasena" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"nombre" validate:"required"`
	Phone string `json:"telefono"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/api/auth/registro", h.register)
	e.POST("/api/auth/login", h.login)

	g := e.Group("/api/usuarios")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("/perfil", h.profile)
	g.PUT("/perfil", h.updateProfile)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *AuthHandler) profile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "no autenticado"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}
