package repository

import (
	"terra-auth/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Blacklist    BlacklistRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		RefreshToken: NewRefreshTokenRepository(db, log),
		Blacklist:    NewBlacklistRepository(db, log),
	}
}
