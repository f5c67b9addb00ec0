package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// ExtractBearerToken strips the "Bearer " scheme from an Authorization
// header value. A missing or schemeless header comes back as-is (possibly
// empty) and fails token parsing downstream.
func ExtractBearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// AccessClaims is the decoded payload of an access token.
type AccessClaims struct {
	UserID string
	Role   string
	Exp    time.Time
}

// GenerateAccessToken signs an HS256 JWT with claims {user_id, role, exp}.
// Expiry is absolute: now + ttlSeconds.
func GenerateAccessToken(secret string, ttlSeconds int, userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Duration(ttlSeconds) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry. It fails closed: anything
// that is not a well-formed, correctly signed HMAC token is ErrTokenInvalid;
// a valid but expired token is ErrTokenExpired. Callers rely on the
// distinction for logging, both map to 401 at the boundary.
func ParseAccessToken(secret, tokenString string) (*AccessClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrTokenInvalid
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenInvalid
	}

	return &AccessClaims{
		UserID: userID,
		Role:   role,
		Exp:    exp.Time,
	}, nil
}
