package middleware

import (
	"errors"
	"net/http"

	"terra-auth/pkg/utils"

	"go.uber.org/zap"
)

// AuthJWT validates the bearer access token and stores the decoded
// identity plus the raw token in the request context.
func AuthJWT(config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			token := utils.ExtractBearerToken(r.Header.Get("Authorization"))

			claims, err := utils.ParseAccessToken(config.JWT.Secret, token)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					logger.Warn("Rejected expired token", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Token expiré")
					return
				}
				logger.Warn("Rejected invalid token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Token invalide")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole restricts a route to the given roles; mount after AuthJWT
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Token invalide")
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role denied",
				zap.String("role", role),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "Accès refusé")
		})
	}
}
