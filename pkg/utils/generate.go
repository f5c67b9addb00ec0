package utils

import (
	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateRefreshTokenValue returns the opaque random value handed to
// clients as a refresh token. uuid.New reads from crypto/rand.
func GenerateRefreshTokenValue() string {
	return uuid.New().String()
}
