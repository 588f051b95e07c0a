package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = errors.New("duplicate key")

	// ErrTokenNotActive covers every way a refresh token can be dead:
	// revoked, expired, or owned by a deactivated account.
	ErrTokenNotActive = errors.New("refresh token not active")
)

// isDuplicate detects a unique-constraint violation on either driver.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
