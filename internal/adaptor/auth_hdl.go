package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"terra-auth/internal/dto/request"
	"terra-auth/internal/dto/response"
	"terra-auth/internal/usecase"
	"terra-auth/pkg/utils"

	"go.uber.org/zap"
)

// User-facing messages stay in French: this service replaces the original
// TERRABIA auth backend and its consumers match on these strings.

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Requête invalide", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Champs requis manquants", validationErrors)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, resp)
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Requête invalide", nil)
		return
	}

	// Validate request (covers the role enum)
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Warn("Register validation failed",
			zap.String("details", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Données invalides", validationErrors)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	utils.ResponseJSON(w, http.StatusCreated, resp)
}

// Refresh handles POST /api/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Requête invalide", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Refresh token manquant", nil)
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleServiceError(w, err, "refresh")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, resp)
}

// Validate handles GET /api/validate. Failures keep the {valide:false}
// body shape, which is why this endpoint does not sit behind the auth
// middleware.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	token := utils.ExtractBearerToken(r.Header.Get("Authorization"))

	resp, err := h.service.Validate(r.Context(), token)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, usecase.ErrTokenExpired):
			h.log.Warn("Validate failed - token expired")
			msg = "Token expiré"
		case errors.Is(err, usecase.ErrTokenBlacklisted):
			h.log.Warn("Validate failed - token blacklisted")
			msg = "Token blacklisté"
		case errors.Is(err, usecase.ErrTokenInvalid):
			h.log.Warn("Validate failed - token invalid")
			msg = "Token invalide"
		default:
			// Fail closed on store errors as well
			h.log.Error("Validate failed", zap.Error(err))
			msg = "Token invalide"
		}
		utils.ResponseJSON(w, http.StatusUnauthorized, response.ValidateErrorResponse{
			Valide: false,
			Error:  msg,
		})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/logout. The auth middleware has already decoded
// the token and rejected expired/invalid ones; repeating a logout with the
// same token still answers 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Token invalide")
		return
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		h.log.Info("Logout requested", zap.String("user_id", userID.String()))
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.handleServiceError(w, err, "logout")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, response.MessageResponse{Message: "Déconnexion réussie"})
}

// handleServiceError translates the service error taxonomy to HTTP.
// Unknown errors are logged with detail and masked.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Identifiants invalides")

	case errors.Is(err, usecase.ErrAccountInactive):
		h.log.Warn(operation+" failed - inactive account", zap.Error(err))
		utils.ResponseForbidden(w, "Utilisateur inactif")

	case errors.Is(err, usecase.ErrEmailTaken):
		h.log.Warn(operation+" failed - email taken", zap.Error(err))
		utils.ResponseConflict(w, "Cet email est déjà utilisé")

	case errors.Is(err, usecase.ErrInvalidRole):
		h.log.Warn(operation+" failed - invalid role", zap.Error(err))
		utils.ResponseBadRequest(w, "Rôle invalide. Doit être l'un de: acheteur, vendeur, admin, livreur", nil)

	case errors.Is(err, usecase.ErrRefreshInvalid):
		h.log.Warn(operation + " failed - refresh token rejected")
		utils.ResponseUnauthorized(w, "Token invalide ou expiré")

	case errors.Is(err, usecase.ErrTokenExpired):
		h.log.Warn(operation + " failed - token expired")
		utils.ResponseUnauthorized(w, "Token expiré")

	case errors.Is(err, usecase.ErrTokenInvalid):
		h.log.Warn(operation + " failed - token invalid")
		utils.ResponseUnauthorized(w, "Token invalide")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Erreur interne du serveur")
	}
}
