package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"terra-auth/internal/dto/request"
	"terra-auth/internal/dto/response"
	"terra-auth/internal/usecase"
	"terra-auth/pkg/utils"

	"go.uber.org/zap"
)

// stubAuthService returns canned values and records what it was called with
type stubAuthService struct {
	loginResp    *response.TokenPairResponse
	loginErr     error
	registerResp *response.RegisterResponse
	registerErr  error
	refreshResp  *response.RefreshResponse
	refreshErr   error
	validateResp *response.ValidateResponse
	validateErr  error
	logoutErr    error

	gotRefreshToken string
	gotAccessToken  string
}

func (s *stubAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPairResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*response.RefreshResponse, error) {
	s.gotRefreshToken = refreshToken
	return s.refreshResp, s.refreshErr
}

func (s *stubAuthService) Validate(ctx context.Context, accessToken string) (*response.ValidateResponse, error) {
	s.gotAccessToken = accessToken
	return s.validateResp, s.validateErr
}

func (s *stubAuthService) Logout(ctx context.Context, accessToken string) error {
	s.gotAccessToken = accessToken
	return s.logoutErr
}

func newHandler(stub *stubAuthService) *AuthHandler {
	return NewAuthHandler(stub, zap.NewNop())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestLoginHandler(t *testing.T) {
	t.Run("success returns the token pair", func(t *testing.T) {
		stub := &stubAuthService{loginResp: &response.TokenPairResponse{
			AccessToken:  "access-jwt",
			RefreshToken: "refresh-uuid",
		}}
		h := newHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"alice@test.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["accessToken"] != "access-jwt" {
			t.Errorf("accessToken = %v", body["accessToken"])
		}
		if body["refreshToken"] != "refresh-uuid" {
			t.Errorf("refreshToken = %v", body["refreshToken"])
		}
	})

	t.Run("missing fields is a 400", func(t *testing.T) {
		h := newHandler(&stubAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"alice@test.com"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["error"] != "Champs requis manquants" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("non-email identifier reaches the service", func(t *testing.T) {
		// Inherited accounts include identifiers that are not RFC-shaped
		// emails; they must get the service's 401, not a validation 400
		h := newHandler(&stubAuthService{loginErr: usecase.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"not-an-email","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != "Identifiants invalides" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("bad credentials is a 401 with a neutral message", func(t *testing.T) {
		h := newHandler(&stubAuthService{loginErr: usecase.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"alice@test.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["error"] != "Identifiants invalides" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("inactive account is a 403", func(t *testing.T) {
		h := newHandler(&stubAuthService{loginErr: usecase.ErrAccountInactive})

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"alice@test.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != "Utilisateur inactif" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("unexpected error is masked as a 500", func(t *testing.T) {
		h := newHandler(&stubAuthService{loginErr: errors.New("connection reset by peer")})

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"alice@test.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["error"] != "Erreur interne du serveur" {
			t.Errorf("error = %v", body["error"])
		}
		if strings.Contains(rec.Body.String(), "connection reset") {
			t.Error("internal error detail leaked to the client")
		}
	})
}

func TestRegisterHandler(t *testing.T) {
	t.Run("success is a 201 with tokens and the user", func(t *testing.T) {
		stub := &stubAuthService{registerResp: &response.RegisterResponse{
			AccessToken:  "access-jwt",
			RefreshToken: "refresh-uuid",
			User: response.UserResponse{
				ID:       "7f1d0db8-0000-0000-0000-000000000001",
				Email:    "alice@test.com",
				Role:     "acheteur",
				FullName: "Alice",
			},
		}}
		h := newHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/register",
			strings.NewReader(`{"email":"alice@test.com","password":"secret123","full_name":"Alice"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		body := decodeBody(t, rec)
		user, ok := body["user"].(map[string]any)
		if !ok {
			t.Fatalf("user missing from body: %s", rec.Body.String())
		}
		if user["role"] != "acheteur" {
			t.Errorf("user.role = %v", user["role"])
		}
		if user["full_name"] != "Alice" {
			t.Errorf("user.full_name = %v", user["full_name"])
		}
	})

	t.Run("short password is accepted", func(t *testing.T) {
		stub := &stubAuthService{registerResp: &response.RegisterResponse{
			AccessToken:  "access-jwt",
			RefreshToken: "refresh-uuid",
			User: response.UserResponse{
				ID:    "7f1d0db8-0000-0000-0000-000000000002",
				Email: "bob@test.com",
				Role:  "acheteur",
			},
		}}
		h := newHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/register",
			strings.NewReader(`{"email":"bob@test.com","password":"abc"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
	})

	t.Run("invalid role is a 400", func(t *testing.T) {
		h := newHandler(&stubAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/register",
			strings.NewReader(`{"email":"alice@test.com","password":"secret123","role":"superadmin"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("taken email is a 409", func(t *testing.T) {
		h := newHandler(&stubAuthService{registerErr: usecase.ErrEmailTaken})

		req := httptest.NewRequest(http.MethodPost, "/api/register",
			strings.NewReader(`{"email":"alice@test.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != "Cet email est déjà utilisé" {
			t.Errorf("error = %v", body["error"])
		}
	})
}

func TestRefreshHandler(t *testing.T) {
	t.Run("success returns a new access token", func(t *testing.T) {
		stub := &stubAuthService{refreshResp: &response.RefreshResponse{AccessToken: "new-access-jwt"}}
		h := newHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/refresh",
			strings.NewReader(`{"refreshToken":"refresh-uuid"}`))
		rec := httptest.NewRecorder()
		h.Refresh(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotRefreshToken != "refresh-uuid" {
			t.Errorf("service received token %q", stub.gotRefreshToken)
		}
		body := decodeBody(t, rec)
		if body["accessToken"] != "new-access-jwt" {
			t.Errorf("accessToken = %v", body["accessToken"])
		}
		if _, ok := body["refreshToken"]; ok {
			t.Error("refresh response must not contain a refreshToken")
		}
	})

	t.Run("missing token field is a 400", func(t *testing.T) {
		h := newHandler(&stubAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/refresh", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Refresh(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != "Refresh token manquant" {
			t.Errorf("error = %v", body["error"])
		}
	})

	t.Run("rejected token is a single 401 message", func(t *testing.T) {
		h := newHandler(&stubAuthService{refreshErr: usecase.ErrRefreshInvalid})

		req := httptest.NewRequest(http.MethodPost, "/api/refresh",
			strings.NewReader(`{"refreshToken":"whatever"}`))
		rec := httptest.NewRecorder()
		h.Refresh(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != "Token invalide ou expiré" {
			t.Errorf("error = %v", body["error"])
		}
	})
}

func TestValidateHandler(t *testing.T) {
	t.Run("success carries identity and valide true", func(t *testing.T) {
		stub := &stubAuthService{validateResp: &response.ValidateResponse{
			Valide: true,
			UserID: "7f1d0db8-0000-0000-0000-000000000001",
			Role:   "vendeur",
		}}
		h := newHandler(stub)

		req := httptest.NewRequest(http.MethodGet, "/api/validate", nil)
		req.Header.Set("Authorization", "Bearer access-jwt")
		rec := httptest.NewRecorder()
		h.Validate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotAccessToken != "access-jwt" {
			t.Errorf("service received token %q, want the bearer value", stub.gotAccessToken)
		}
		body := decodeBody(t, rec)
		if body["valide"] != true {
			t.Errorf("valide = %v", body["valide"])
		}
		if body["role"] != "vendeur" {
			t.Errorf("role = %v", body["role"])
		}
	})

	t.Run("expired token is distinguished from invalid", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			err  error
			msg  string
		}{
			{"expired", usecase.ErrTokenExpired, "Token expiré"},
			{"invalid", usecase.ErrTokenInvalid, "Token invalide"},
			{"blacklisted", usecase.ErrTokenBlacklisted, "Token blacklisté"},
		} {
			t.Run(tc.name, func(t *testing.T) {
				h := newHandler(&stubAuthService{validateErr: tc.err})

				req := httptest.NewRequest(http.MethodGet, "/api/validate", nil)
				req.Header.Set("Authorization", "Bearer whatever")
				rec := httptest.NewRecorder()
				h.Validate(rec, req)

				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("status = %d, want 401", rec.Code)
				}
				body := decodeBody(t, rec)
				if body["valide"] != false {
					t.Errorf("valide = %v, want false", body["valide"])
				}
				if body["error"] != tc.msg {
					t.Errorf("error = %v, want %s", body["error"], tc.msg)
				}
			})
		}
	})

	t.Run("missing header fails like an invalid token", func(t *testing.T) {
		h := newHandler(&stubAuthService{validateErr: usecase.ErrTokenInvalid})

		req := httptest.NewRequest(http.MethodGet, "/api/validate", nil)
		rec := httptest.NewRecorder()
		h.Validate(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("success confirms in French", func(t *testing.T) {
		stub := &stubAuthService{}
		h := newHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
		req = req.WithContext(utils.SetTokenContext(req.Context(), "access-jwt"))
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if stub.gotAccessToken != "access-jwt" {
			t.Errorf("service received token %q", stub.gotAccessToken)
		}
		if body := decodeBody(t, rec); body["message"] != "Déconnexion réussie" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("without middleware context it is a 401", func(t *testing.T) {
		h := newHandler(&stubAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}
