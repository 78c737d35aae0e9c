package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"agrosoft/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // int64
	CtxRoleIDKey = "role_id" // int64
)

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("no autenticado"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("no autenticado"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("no autenticado"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("token inválido o expirado"))
			}

			//claimsを取り出す
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("token inválido o expirado"))
			}

			//user_id（sub）を取り出す
			userID, err := parseID(claims["sub"])
			if err != nil || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("token inválido o expirado"))
			}

			//role_id（rol）を取り出す
			roleID, err := parseID(claims["rol"])
			if err != nil || roleID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("token inválido o expirado"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxRoleIDKey, roleID)

			return next(c)
		}
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Error: msg}
}

// JWTのnumeric claimをint64に変換する
func parseID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid claim")
	}
}
