package request

// Only presence is validated for email and password: the accounts this
// service inherits include identifiers that are not RFC-shaped emails and
// passwords of any length, and both must keep working.

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=acheteur vendeur admin livreur"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
