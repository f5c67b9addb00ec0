package wire

import (
	"terra-auth/internal/adaptor"
	"terra-auth/pkg/middleware"
	"terra-auth/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/refresh", authHandler.Refresh)

	// Validate is public on purpose: its failure body carries the
	// {valide:false} shape, which the shared middleware does not produce
	r.Get("/api/validate", authHandler.Validate)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthJWT(config, log)).Post("/api/logout", authHandler.Logout)
}
