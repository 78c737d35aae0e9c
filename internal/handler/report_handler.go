package handler

import (
	"net/http"
	"time"

	"agrosoft/internal/config"
	"agrosoft/internal/middleware"
	"agrosoft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/reportes のHTTP（管理者のみ）
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/reportes")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminOnly())

	g.GET("/finanzas", h.finance)
}

func (h *ReportHandler) finance(c echo.Context) error {
	roleID, _ := getRoleIDFromContext(c)

	from, err := time.Parse("2006-01-02", c.QueryParam("desde"))
	if err != nil {
		return writeBadRequest(c, "desde inválido (YYYY-MM-DD)")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("hasta"))
	if err != nil {
		return writeBadRequest(c, "hasta inválido (YYYY-MM-DD)")
	}

	out, err := h.uc.FinanceSummary(c.Request().Context(), roleID, usecase.FinanceReportInput{
		From: from,
		To:   to.Add(24*time.Hour - time.Second), // hastaはその日いっぱい含む
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}
