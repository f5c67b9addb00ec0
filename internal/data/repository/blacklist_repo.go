package repository

import (
	"context"
	"fmt"

	"terra-auth/internal/data/entity"
	"terra-auth/pkg/database"

	"go.uber.org/zap"
)

type BlacklistRepository interface {
	Add(ctx context.Context, token *entity.BlacklistToken) error
	Exists(ctx context.Context, token string) (bool, error)
}

type blacklistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBlacklistRepository(db database.PgxIface, log *zap.Logger) BlacklistRepository {
	return &blacklistRepository{
		db:  db,
		log: log.With(zap.String("repository", "blacklist")),
	}
}

// Add inserts the token into the blacklist. The token string is the primary
// key; inserting a value that is already present is a no-op.
func (r *blacklistRepository) Add(ctx context.Context, token *entity.BlacklistToken) error {
	query := `
		INSERT INTO blacklist_tokens (token, expires_at, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, token.Token, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		r.log.Error("Failed to blacklist token", zap.Error(err))
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

// Exists is always a fresh read; revocation must be visible immediately
func (r *blacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blacklist_tokens WHERE token = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, token).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check blacklist", zap.Error(err))
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists, nil
}
