package auth

import (
	"context"

	"usagl/internal/domain"
	"usagl/internal/pkg/jwt"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RefreshTokenRepositoryInterface — append-only storage for refresh tokens.
// Rotate must be a single atomic unit at the store layer.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	Rotate(ctx context.Context, presented string, next *domain.RefreshToken) (*domain.User, error)
}

type jwtService interface {
	Generate(userID int64, email, role string) (string, error)
	Decode(tokenStr string) (*jwt.Claims, error)
}
