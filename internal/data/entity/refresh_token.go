package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the stored counterpart of the opaque value handed to
// clients. Expired rows are not swept, they are just invalid on lookup.
type RefreshToken struct {
	ID        uuid.UUID `db:"id"`
	Value     string    `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// IsExpired is a pure function of the expiry against the clock
func (t *RefreshToken) IsExpired() bool {
	return t.ExpiresAt.Before(time.Now())
}
