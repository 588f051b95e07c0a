package domain

import "time"

// RefreshToken is one link in a user's rotation history.
//
// Rows are append-only: rotation sets RevokedAt on the presented row and
// inserts a fresh one, nothing is ever deleted. ReplacedByID points at the
// successor so the audit trail survives a fault between revoke and insert.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"userId" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Token string `json:"-" gorm:"size:200;uniqueIndex;not null"`

	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revokedAt" gorm:"index"`

	DeviceInfo   *string `json:"deviceInfo" gorm:"size:200"`
	ReplacedByID *int64  `json:"replacedById" gorm:"index"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// Active reports whether the token can still be exchanged.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}
