package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key", 24*time.Hour)

	userID := int64(123)
	email := "test@example.com"

	token, err := j.Generate(userID, email)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %d, want %d", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Validate() got Email %s, want %s", claims.Email, email)
	}
}

func TestJWT_TamperedToken(t *testing.T) {
	j := NewJWT("my-secret-key", 24*time.Hour)

	token, err := j.Generate(1, "a@b.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "invalid-signature"
	if _, err := j.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() tampered token: got %v, want ErrInvalidToken", err)
	}

	if _, err := j.Validate("invalid.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() malformed token: got %v, want ErrInvalidToken", err)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	issued := NewJWT("secret-a", 24*time.Hour)
	validated := NewJWT("secret-b", 24*time.Hour)

	token, err := issued.Generate(1, "a@b.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := validated.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() with wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("my-secret-key", -time.Hour)

	token, err := j.Generate(1, "expired@example.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := j.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() expired token: got %v, want ErrExpiredToken", err)
	}
}
