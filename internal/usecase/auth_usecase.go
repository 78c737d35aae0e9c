package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"agrosoft/internal/config"
	"agrosoft/internal/domain/model"
	repo "agrosoft/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

type AuthUsecase struct {
	cfg      config.Config
	userRepo repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, userRepo repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, userRepo: userRepo}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	RoleID   int64
}

type LoginInput struct {
	Email    string
	Password string
}

type UserOutput struct {
	ID       int64  `json:"id_usuario"`
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Phone    string `json:"telefono"`
	RoleID   int64  `json:"id_rol"`
	IsActive bool   `json:"activo"`
}

type LoginOutput struct {
	User        UserOutput `json:"usuario"`
	AccessToken string     `json:"token"`
	ExpiresIn   int        `json:"expira_en"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "nombre requerido")
	}
	if strings.TrimSpace(in.Email) == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "correo requerido")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "la contraseña debe tener al menos 8 caracteres")
	}

	//自己登録はCliente/Productorのみ。Administradorは作れない。
	roleID := in.RoleID
	if roleID == 0 {
		roleID = model.RoleCustomerID
	}
	if roleID != model.RoleCustomerID && roleID != model.RoleProducerID {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "id_rol inválido")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(pwHash),
		Phone:        strings.TrimSpace(in.Phone),
		RoleID:       roleID,
		IsActive:     true,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return UserOutput{}, NewHTTPError(http.StatusConflict, "el correo ya está registrado")
		}
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}

	return toUserOutput(user), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "correo y contraseña requeridos")
	}

	user, err := u.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil || user == nil {
		//存在しないメールでもメッセージは同じにする
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "credenciales inválidas")
	}

	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "cuenta desactivada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "credenciales inválidas")
	}

	//last_login更新（失敗してもログイン自体は通す）
	now := time.Now()
	user.LastLoginAt = &now
	_ = u.userRepo.Update(ctx, user)

	token, expiresIn, err := u.issueAccessToken(user, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "error interno")
	}

	return LoginOutput{
		User:        toUserOutput(user),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if !user.IsActive {
		return UserOutput{}, NewHTTPError(http.StatusForbidden, "cuenta desactivada")
	}

	return toUserOutput(user), nil
}

type UpdateProfileInput struct {
	Name  string
	Phone string
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusUnauthorized, "no autenticado")
	}
	if strings.TrimSpace(in.Name) == "" {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "nombre requerido")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "usuario no encontrado")
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Phone = strings.TrimSpace(in.Phone)

	if err := u.userRepo.Update(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "error de base de datos")
	}
	return toUserOutput(user), nil
}

// jwt発行。subはユーザーID、rolはロールID。
func (u *AuthUsecase) issueAccessToken(user *model.User, now time.Time) (string, int, error) {
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub": user.ID,
		"rol": user.RoleID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

func toUserOutput(u *model.User) UserOutput {
	return UserOutput{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		RoleID:   u.RoleID,
		IsActive: u.IsActive,
	}
}
