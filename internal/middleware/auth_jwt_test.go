package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrosoft/internal/config"
	"agrosoft/internal/domain/model"
	"agrosoft/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type mwErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type mwOKResponse struct {
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

func mustMakeJWT(t *testing.T, secret string, sub int64, rol int64, method jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": sub,
		"rol": rol,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthTestServer(cfg config.Config) *echo.Echo {
	e := echo.New()
	g := e.Group("/protegido")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, mwOKResponse{
			UserID: c.Get(middleware.CtxUserIDKey).(int64),
			RoleID: c.Get(middleware.CtxRoleIDKey).(int64),
		})
	})
	return e
}

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	e := newAuthTestServer(cfg)

	token := mustMakeJWT(t, cfg.JWTSecret, 5, model.RoleProducerID, jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.UserID)
	assert.Equal(t, model.RoleProducerID, body.RoleID)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	e := newAuthTestServer(config.Config{JWTSecret: "test_secret"})

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body mwErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "no autenticado", body.Error)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	e := newAuthTestServer(config.Config{JWTSecret: "test_secret"})

	token := mustMakeJWT(t, "otro_secret", 5, model.RoleCustomerID, jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	e := newAuthTestServer(cfg)

	claims := jwt.MapClaims{
		"sub": int64(5),
		"rol": model.RoleCustomerID,
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoles_Forbidden(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	e := echo.New()
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminOnly())
	g.GET("", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	token := mustMakeJWT(t, cfg.JWTSecret, 5, model.RoleCustomerID, jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoles_AdminAllowed(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	e := echo.New()
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminOnly())
	g.GET("", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	token := mustMakeJWT(t, cfg.JWTSecret, 1, model.RoleAdminID, jwt.SigningMethodHS256)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
