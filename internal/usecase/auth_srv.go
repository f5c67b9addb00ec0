package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"terra-auth/internal/data/entity"
	"terra-auth/internal/data/repository"
	"terra-auth/internal/dto/request"
	"terra-auth/internal/dto/response"
	"terra-auth/internal/queue"
	"terra-auth/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPairResponse, error)
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response.RefreshResponse, error)
	Validate(ctx context.Context, accessToken string) (*response.ValidateResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type authService struct {
	repo      *repository.Repository
	publisher queue.Publisher
	config    *utils.Config
	log       *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	publisher queue.Publisher,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		publisher: publisher,
		config:    config,
		log:       log,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPairResponse, error) {
	email := normalizeEmail(req.Email)

	// 1. Look up user. An unknown email and a wrong password produce the
	// same error so responses carry no enumeration signal.
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		s.log.Warn("Login failed, unknown email", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	// 2. Inactive accounts are rejected before the password check
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	// 3. Verify password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed, wrong password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Issue access + refresh tokens
	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return pair, nil
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	email := normalizeEmail(req.Email)

	// 1. Role defaults to buyer; the handler already validated the enum,
	// this guard keeps the service safe when called directly
	role := entity.RoleBuyer
	if req.Role != "" {
		if !entity.ValidRole(req.Role) {
			return nil, ErrInvalidRole
		}
		role = entity.UserRole(req.Role)
	}

	// 2. Existence pre-check. Only a nicer error message: the unique
	// constraint on email is what actually prevents duplicates.
	exists, err := s.repo.User.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 3. Hash password
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	// 4. Create user
	now := time.Now()
	user := &entity.User{
		ID:           utils.GenerateUUID(),
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Location:     req.Location,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Pre-check raced with a concurrent registration
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	// 5. Issue tokens
	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	// 6. Notify the platform. Fire-and-forget: the user is already
	// committed, a broker failure only gets logged.
	s.publisher.PublishUserCreated(queue.UserCreatedEvent{
		UserID:    user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Phone:     user.Phone,
		Location:  user.Location,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return &response.RegisterResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         response.UserToResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*response.RefreshResponse, error) {
	// 1. Blacklisted, unknown and expired values all collapse into one
	// error so callers cannot probe which case they hit
	blacklisted, err := s.repo.Blacklist.Exists(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if blacklisted {
		return nil, ErrRefreshInvalid
	}

	token, err := s.repo.RefreshToken.FindByValue(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if token == nil || token.IsExpired() {
		return nil, ErrRefreshInvalid
	}

	// 2. Role is read from the user at refresh time, not cached in the
	// refresh token, so role changes take effect on the next refresh
	user, err := s.repo.User.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if user == nil {
		s.log.Warn("Refresh token owner no longer exists",
			zap.String("user_id", token.UserID.String()))
		return nil, ErrRefreshInvalid
	}

	// 3. New access token; the refresh token is not rotated or extended,
	// it stays valid until its own expiry or a logout
	accessToken, err := utils.GenerateAccessToken(
		s.config.JWT.Secret, s.config.JWT.AccessTTLSeconds,
		user.ID.String(), string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("refresh: sign access token: %w", err)
	}

	return &response.RefreshResponse{AccessToken: accessToken}, nil
}

func (s *authService) Validate(ctx context.Context, accessToken string) (*response.ValidateResponse, error) {
	// 1. Decode. ErrTokenExpired and ErrTokenInvalid propagate as-is so
	// the handler can report them distinctly.
	claims, err := utils.ParseAccessToken(s.config.JWT.Secret, accessToken)
	if err != nil {
		return nil, err
	}

	// 2. Fresh blacklist read on every validation
	blacklisted, err := s.repo.Blacklist.Exists(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}

	// 3. Identity comes from the claims, not from the user directory:
	// a role change is not reflected until the token is reissued
	return &response.ValidateResponse{
		Valide: true,
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	// 1. Same decode as Validate, same two failure modes
	claims, err := utils.ParseAccessToken(s.config.JWT.Secret, accessToken)
	if err != nil {
		return err
	}

	// 2. Repeated logout with the same token succeeds as a no-op
	blacklisted, err := s.repo.Blacklist.Exists(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if blacklisted {
		s.log.Info("Logout on already blacklisted token",
			zap.String("user_id", claims.UserID))
		return nil
	}

	// 3. The blacklist entry lives one full access TTL from the moment of
	// logout, not until the token's original expiry. Longstanding behavior
	// other services rely on; see DESIGN.md.
	now := time.Now()
	entry := &entity.BlacklistToken{
		Token:     accessToken,
		ExpiresAt: now.Add(time.Duration(s.config.JWT.AccessTTLSeconds) * time.Second),
		CreatedAt: now,
	}
	if err := s.repo.Blacklist.Add(ctx, entry); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	// 4. Drop every refresh token the user holds
	userID, err := utils.ParseUUID(claims.UserID)
	if err != nil {
		return ErrTokenInvalid
	}
	if err := s.repo.RefreshToken.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// issueTokenPair signs an access token and persists a fresh refresh token
func (s *authService) issueTokenPair(ctx context.Context, user *entity.User) (*response.TokenPairResponse, error) {
	accessToken, err := utils.GenerateAccessToken(
		s.config.JWT.Secret, s.config.JWT.AccessTTLSeconds,
		user.ID.String(), string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	now := time.Now()
	refreshToken := &entity.RefreshToken{
		ID:        utils.GenerateUUID(),
		Value:     utils.GenerateRefreshTokenValue(),
		UserID:    user.ID,
		ExpiresAt: now.Add(time.Duration(s.config.JWT.RefreshTTLDays) * 24 * time.Hour),
		CreatedAt: now,
	}

	if err := s.repo.RefreshToken.Create(ctx, refreshToken); err != nil {
		return nil, err
	}

	return &response.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Value,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
