package handler

import (
	"net/http"

	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通のレスポンス封筒。
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Data: data})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Success: false, Error: he.Message})
	}
	if ehe, ok := err.(*echo.HTTPError); ok {
		msg, _ := ehe.Message.(string)
		if msg == "" {
			msg = "petición inválida"
		}
		return c.JSON(ehe.Code, ErrorResponse{Success: false, Error: msg})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: "error interno"})
}

func writeBadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: msg})
}

//middleware.AuthJWT が c.Set した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func getRoleIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxRoleIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}
