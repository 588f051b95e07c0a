package auth

import (
	"context"
	"testing"
	"time"

	"usagl/internal/domain"
	jwtsvc "usagl/internal/pkg/jwt"
	"usagl/internal/repository"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) Rotate(ctx context.Context, presented string, next *domain.RefreshToken) (*domain.User, error) {
	args := m.Called(ctx, presented, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) Generate(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) Decode(tokenStr string) (*jwtsvc.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwtsvc.Claims), args.Error(1)
}

func newTestService(users *mockUserRepo, tokens *mockRefreshTokenRepo, jwt *mockJWTService) *Service {
	return NewService(users, tokens, jwt, 7*24*time.Hour)
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "dispatch@usagl.com" &&
			u.Role == domain.RoleDispatcher &&
			u.IsActive &&
			u.PasswordHash != "secret123"
	})).Return(nil)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	user, err := service.Register(context.Background(), RegisterRequest{
		Email:    "dispatch@usagl.com",
		Password: "secret123",
		Role:     "Dispatcher",
	})

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	userRepo.AssertExpectations(t)
}

func TestService_Register_UnknownRoleFallsBackToDispatcher(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleDispatcher
	})).Return(nil)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	user, err := service.Register(context.Background(), RegisterRequest{
		Email:    "someone@usagl.com",
		Password: "secret123",
		Role:     "SuperAdmin",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleDispatcher, user.Role)
}

func TestService_Register_EmailExists(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "exists@usagl.com",
		Password: "secret123",
		Role:     "Admin",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &domain.User{
		ID:           10,
		Email:        "user@usagl.com",
		PasswordHash: string(hashed),
		Role:         domain.RoleDispatcher,
		IsActive:     true,
	}

	userRepo.On("GetByEmail", mock.Anything, "user@usagl.com").Return(existing, nil)
	jwtSvc.On("Generate", int64(10), "user@usagl.com", "Dispatcher").Return("access-token", nil)
	tokenRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *domain.RefreshToken) bool {
		return rt.UserID == 10 && len(rt.Token) == 64 && rt.ExpiresAt.After(time.Now())
	})).Return(nil)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@usagl.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	tokenRepo.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	userRepo.On("GetByEmail", mock.Anything, "user@usagl.com").Return(&domain.User{
		ID:           10,
		Email:        "user@usagl.com",
		PasswordHash: string(hashed),
		IsActive:     true,
	}, nil)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@usagl.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("GetByEmail", mock.Anything, "nobody@usagl.com").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@usagl.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userRepo.On("GetByEmail", mock.Anything, "gone@usagl.com").Return(&domain.User{
		ID:           11,
		Email:        "gone@usagl.com",
		PasswordHash: string(hashed),
		IsActive:     false,
	}, nil)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "gone@usagl.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Refresh_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	owner := &domain.User{ID: 10, Email: "user@usagl.com", Role: domain.RoleDispatcher, IsActive: true}

	tokenRepo.On("Rotate", mock.Anything, "old-refresh", mock.MatchedBy(func(rt *domain.RefreshToken) bool {
		return len(rt.Token) == 64 && rt.ExpiresAt.After(time.Now())
	})).Return(owner, nil)
	jwtSvc.On("Generate", int64(10), "user@usagl.com", "Dispatcher").Return("new-access", nil)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	result, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: "old-refresh"})

	assert.NoError(t, err)
	assert.Equal(t, "new-access", result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, "old-refresh", result.RefreshToken)
	tokenRepo.AssertExpectations(t)
}

func TestService_Refresh_UnknownToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	tokenRepo.On("Rotate", mock.Anything, "never-issued", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: "never-issued"})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Refresh_RotatedToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	tokenRepo.On("Rotate", mock.Anything, "already-rotated", mock.Anything).Return(nil, repository.ErrTokenNotActive)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: "already-rotated"})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_WhoAmI_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	claims := &jwtsvc.Claims{
		Email: "user@usagl.com",
		Role:  "Dispatcher",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject: "10",
		},
	}
	user := &domain.User{ID: 10, Email: "user@usagl.com", Role: domain.RoleDispatcher, IsActive: true}

	jwtSvc.On("Decode", "some-access-token").Return(claims, nil)
	userRepo.On("GetByID", mock.Anything, int64(10)).Return(user, nil)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	got, err := service.WhoAmI(context.Background(), "some-access-token")

	assert.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
}

func TestService_WhoAmI_BadToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	jwtSvc.On("Decode", "garbage").Return(nil, jwtsvc.ErrInvalidToken)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.WhoAmI(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_WhoAmI_UserVanished(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockRefreshTokenRepo)
	jwtSvc := new(mockJWTService)

	claims := &jwtsvc.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: "42"},
	}
	jwtSvc.On("Decode", "valid-but-stale").Return(claims, nil)
	userRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(userRepo, tokenRepo, jwtSvc)

	_, err := service.WhoAmI(context.Background(), "valid-but-stale")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
