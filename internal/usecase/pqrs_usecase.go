package usecase

import (
	"context"
	"net/http"
	"strings"

	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"
)

type PQRSUsecase struct {
	pqrsRepo repo.PQRSRepository
}

func NewPQRSUsecase(pqrsRepo repo.PQRSRepository) *PQRSUsecase {
	return &PQRSUsecase{pqrsRepo: pqrsRepo}
}

type CreatePQRSInput struct {
	TypeID      int64
	Subject     string
	Description string
}

func (u *PQRSUsecase) Create(ctx context.Context, userID int64, in CreatePQRSInput) (model.PQRS, error) {
	if userID <= 0 {
		return model.PQRS{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if in.TypeID <= 0 {
		return model.PQRS{}, NewHTTPError(http.StatusBadRequest, "id_tipo inválido")
	}
	if strings.TrimSpace(in.Subject) == "" {
		return model.PQRS{}, NewHTTPError(http.StatusBadRequest, "asunto requerido")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.PQRS{}, NewHTTPError(http.StatusBadRequest, "descripcion requerida")
	}

	p, err := u.pqrsRepo.Create(ctx, model.PQRS{
		UserID:      userID,
		TypeID:      in.TypeID,
		Subject:     strings.TrimSpace(in.Subject),
		Description: strings.TrimSpace(in.Description),
		Status:      model.PQRSStatusOpen,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.PQRS{}, NewHTTPError(http.StatusBadRequest, "id_tipo inválido")
		}
		return model.PQRS{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return p, nil
}

func (u *PQRSUsecase) ListMine(ctx context.Context, userID int64) ([]model.PQRS, error) {
	if userID <= 0 {
		return []model.PQRS{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}

	items, err := u.pqrsRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.PQRS{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

func (u *PQRSUsecase) ListAll(ctx context.Context, actorRoleID int64, status string) ([]model.PQRS, error) {
	if actorRoleID != model.RoleAdminID {
		return []model.PQRS{}, NewHTTPError(http.StatusForbidden, "solo administradores")
	}

	var filter *model.PQRSStatus
	if s := strings.TrimSpace(status); s != "" {
		st := model.PQRSStatus(s)
		switch st {
		case model.PQRSStatusOpen, model.PQRSStatusAnswered, model.PQRSStatusClosed:
			filter = &st
		default:
			return []model.PQRS{}, NewHTTPError(http.StatusBadRequest, "estado inválido")
		}
	}

	items, err := u.pqrsRepo.ListAll(ctx, filter)
	if err != nil {
		return []model.PQRS{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return items, nil
}

// 管理者の回答。回答と同時にRESPONDIDOへ。
func (u *PQRSUsecase) Respond(ctx context.Context, actorRoleID int64, pqrsID int64, response string) error {
	if actorRoleID != model.RoleAdminID {
		return NewHTTPError(http.StatusForbidden, "solo administradores")
	}
	if pqrsID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id_pqrs inválido")
	}
	if strings.TrimSpace(response) == "" {
		return NewHTTPError(http.StatusBadRequest, "respuesta requerida")
	}

	p, err := u.pqrsRepo.FindByID(ctx, pqrsID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "pqrs no encontrada")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	if p.Status == model.PQRSStatusClosed {
		return NewHTTPError(http.StatusBadRequest, "la pqrs ya está cerrada")
	}

	if err := u.pqrsRepo.Respond(ctx, pqrsID, strings.TrimSpace(response), model.PQRSStatusAnswered); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "pqrs no encontrada")
		}
		return NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return nil
}
