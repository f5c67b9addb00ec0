package usecase

import (
	"errors"

	"terra-auth/pkg/utils"
)

// Expected failures of the auth flows. The adaptor layer maps these to
// HTTP statuses; anything else is treated as unexpected and masked.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRefreshInvalid     = errors.New("refresh token invalid, expired or blacklisted")
	ErrTokenBlacklisted   = errors.New("token blacklisted")

	// Decode failures come from the token codec so the middleware and the
	// service report the same values.
	ErrTokenExpired = utils.ErrTokenExpired
	ErrTokenInvalid = utils.ErrTokenInvalid
)
