package usecase

import (
	"terra-auth/internal/data/repository"
	"terra-auth/internal/queue"
	"terra-auth/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
}

func NewService(repo *repository.Repository, publisher queue.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth: NewAuthService(repo, publisher, config, log),
	}
}
