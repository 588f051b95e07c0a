package repository

import (
	"context"
	"errors"
	"time"

	"usagl/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshTokenRepository provides DB access for refresh tokens.
//
// The table is append-only: rotation revokes the presented row and inserts
// a new one in the same transaction. Nothing is ever deleted here.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Rotate exchanges the presented token for next in one transaction.
//
// The presented row is locked (FOR UPDATE on Postgres; SQLite serializes
// writers on its own), validated, revoked, and next is inserted with its
// ReplacedByID audit link. Exactly one of two concurrent rotations of the
// same value can win: the loser's guarded UPDATE matches zero rows and it
// gets ErrTokenNotActive.
//
// Returns the owning user so the caller can mint a new access token without
// a second round trip.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, presented string, next *domain.RefreshToken) (*domain.User, error) {
	now := time.Now().UTC()
	var owner domain.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("token = ?", presented)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var current domain.RefreshToken
		if err := q.First(&current).Error; err != nil {
			return err
		}

		if !current.Active(now) {
			return ErrTokenNotActive
		}

		if err := tx.First(&owner, current.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotActive
			}
			return err
		}
		if !owner.IsActive {
			return ErrTokenNotActive
		}

		next.UserID = current.UserID
		next.DeviceInfo = coalesceDevice(next.DeviceInfo, current.DeviceInfo)
		if err := tx.Create(next).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", current.ID).
			Updates(map[string]any{
				"revoked_at":     now,
				"replaced_by_id": next.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another rotation won the race between our read and this write.
			return ErrTokenNotActive
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func coalesceDevice(next, current *string) *string {
	if next != nil {
		return next
	}
	return current
}
