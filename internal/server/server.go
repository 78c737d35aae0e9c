package server

import (
	"agrosoft/internal/config"
	"agrosoft/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録が必要なhandler一式。
type Handlers struct {
	Auth     RouteRegistrar
	Product  RouteRegistrar
	Category RouteRegistrar
	Cart     RouteRegistrar
	Order    RouteRegistrar
	Discount RouteRegistrar
	PQRS     RouteRegistrar
	Review   RouteRegistrar
	Report   RouteRegistrar
}

type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

// New はecho本体を組み立てて返す（起動はmainでやる）。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = validator.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	//フロントからのアクセス用CORS
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FEURL},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	RegisterRoutes(e, cfg, h)

	return e
}
