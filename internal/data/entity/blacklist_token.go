package entity

import (
	"time"
)

// BlacklistToken marks an exact encoded access-token string as revoked.
// The token string itself is the primary key, so re-blacklisting the same
// value is a no-op rather than an error.
type BlacklistToken struct {
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
