package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

// Roles of the TERRABIA marketplace. Stored values are the French names
// the rest of the platform expects on the wire.
const (
	RoleBuyer   UserRole = "acheteur"
	RoleSeller  UserRole = "vendeur"
	RoleAdmin   UserRole = "admin"
	RoleCourier UserRole = "livreur"
)

// ValidRole reports whether role is one of the fixed enum values
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleBuyer, RoleSeller, RoleAdmin, RoleCourier:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	FullName     string    `db:"full_name"`
	Phone        string    `db:"phone"`
	Location     string    `db:"location"`
	Role         UserRole  `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
