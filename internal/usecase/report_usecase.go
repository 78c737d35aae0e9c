package usecase

import (
	"context"
	"net/http"
	"time"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"
)

// 財務レポート。Entregadoの注文だけを集計対象にする。
// 出力はJSONのみ（PDF/Excelの描画は対象外）。
type ReportUsecase struct {
	reportRepo repo.ReportRepository
}

func NewReportUsecase(reportRepo repo.ReportRepository) *ReportUsecase {
	return &ReportUsecase{reportRepo: reportRepo}
}

type FinanceReportInput struct {
	From time.Time
	To   time.Time
}

type FinanceReportOutput struct {
	From        time.Time           `json:"desde"`
	To          time.Time           `json:"hasta"`
	TotalIncome int64               `json:"ingresos_totales"`
	OrderCount  int64               `json:"pedidos_entregados"`
	TopProducts []repo.ProductSales `json:"productos_mas_vendidos"`
}

func (u *ReportUsecase) FinanceSummary(ctx context.Context, actorRoleID int64, in FinanceReportInput) (FinanceReportOutput, error) {
	if actorRoleID != model.RoleAdminID {
		return FinanceReportOutput{}, NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if in.From.IsZero() || in.To.IsZero() {
		return FinanceReportOutput{}, NewHTTPError(http.StatusBadRequest, "rango de fechas requerido")
	}
	if in.To.Before(in.From) {
		return FinanceReportOutput{}, NewHTTPError(http.StatusBadRequest, "rango de fechas inválido")
	}

	total, count, err := u.reportRepo.RevenueBetween(ctx, in.From, in.To)
	if err != nil {
		return FinanceReportOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	top, err := u.reportRepo.TopProducts(ctx, in.From, in.To, 10)
	if err != nil {
		return FinanceReportOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	return FinanceReportOutput{
		From:        in.From,
		To:          in.To,
		TotalIncome: total,
		OrderCount:  count,
		TopProducts: top,
	}, nil
}
