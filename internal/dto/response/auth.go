package response

import (
	"terra-auth/internal/data/entity"
)

// Field names below are consumed by the other TERRABIA services and the
// frontend; they are part of the API contract.

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// UserResponse is the public projection of a user: never the hash
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type ValidateResponse struct {
	Valide bool   `json:"valide"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type ValidateErrorResponse struct {
	Valide bool   `json:"valide"`
	Error  string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Helper converter
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		Role:     string(user.Role),
		FullName: user.FullName,
	}
}
