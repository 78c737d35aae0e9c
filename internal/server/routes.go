package server

import (
	"net/http"

	"agrosoft/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Category.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Discount.RegisterRoutes(e, cfg)
	h.PQRS.RegisterRoutes(e, cfg)
	h.Review.RegisterRoutes(e, cfg)
	h.Report.RegisterRoutes(e, cfg)
}
