package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("secret", 900, "user-123", "vendeur")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ParseAccessToken("secret", token)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %s, want user-123", claims.UserID)
	}
	if claims.Role != "vendeur" {
		t.Errorf("Role = %s, want vendeur", claims.Role)
	}

	want := time.Now().Add(900 * time.Second)
	if d := claims.Exp.Sub(want); d < -2*time.Second || d > 2*time.Second {
		t.Errorf("Exp = %v, want about %v", claims.Exp, want)
	}
}

func TestParseAccessTokenRejections(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, _ := GenerateAccessToken("secret-a", 900, "user-123", "admin")
		if _, err := ParseAccessToken("secret-b", token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := GenerateAccessToken("secret", -10, "user-123", "acheteur")
		if _, err := ParseAccessToken("secret", token); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseAccessToken("secret", "not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := ParseAccessToken("secret", ""); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("alg none", func(t *testing.T) {
		// Token signed with the "none" method must never verify
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": "user-123",
			"role":    "admin",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ParseAccessToken("secret", token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("missing user_id claim", func(t *testing.T) {
		signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		token, err := signed.SignedString([]byte("secret"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ParseAccessToken("secret", token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("error = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"extra spaces", "Bearer   abc.def.ghi  ", "abc.def.ghi"},
		{"no scheme", "abc.def.ghi", "abc.def.ghi"},
		{"empty", "", ""},
		{"scheme only", "Bearer ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractBearerToken(tc.header); got != tc.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
