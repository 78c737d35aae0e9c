package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"agrosoft/internal/config"
	"agrosoft/internal/domain/model"
	"agrosoft/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var testCfg = config.Config{Port: "8080", JWTSecret: "test_secret", GoEnv: "dev"}

func TestAuthUsecase_Register_HashesPasswordAndNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testCfg, users)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文では保存しない
		if u.PasswordHash == "secreto123" {
			return false
		}
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto123"))
		return err == nil && u.Email == "maria@finca.co" && u.RoleID == model.RoleCustomerID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 5
	}).Return(nil)

	out, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "María",
		Email:    "  MARIA@Finca.co ",
		Password: "secreto123",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "maria@finca.co", out.Email)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_AdminRoleRejected(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testCfg, users)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Intruso",
		Email:    "x@y.co",
		Password: "secreto123",
		RoleID:   model.RoleAdminID,
	})

	assertHTTPError(t, err, http.StatusBadRequest, "id_rol inválido")
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_IssuesTokenWithSubAndRol(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testCfg, users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "maria@finca.co").Return(&model.User{
		ID: 5, Email: "maria@finca.co", PasswordHash: string(hash),
		RoleID: model.RoleProducerID, IsActive: true,
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Login(ctx, usecase.LoginInput{Email: "maria@finca.co", Password: "secreto123"})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	//発行したトークンのclaimsを検証
	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testCfg.JWTSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(5), claims["sub"])
	assert.Equal(t, float64(model.RoleProducerID), claims["rol"])
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testCfg, users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "maria@finca.co").Return(&model.User{
		ID: 5, Email: "maria@finca.co", PasswordHash: string(hash), IsActive: true,
	}, nil)

	_, err := uc.Login(ctx, usecase.LoginInput{Email: "maria@finca.co", Password: "otra"})

	assertHTTPError(t, err, http.StatusUnauthorized, "credenciales inválidas")
}

func TestAuthUsecase_Login_InactiveAccount(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(testCfg, users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "maria@finca.co").Return(&model.User{
		ID: 5, Email: "maria@finca.co", PasswordHash: string(hash), IsActive: false,
	}, nil)

	_, err := uc.Login(ctx, usecase.LoginInput{Email: "maria@finca.co", Password: "secreto123"})

	assertHTTPError(t, err, http.StatusForbidden, "cuenta desactivada")
}
