package util

import (
	"testing"
	"time"

	"online_exam_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		Email: "student@example.com",
		Role:  model.Student,
	}
	user.ID = 42
	secret := "test-secret-test-secret-test-secret"

	tokenString, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT(tokenString, secret)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.Student {
		t.Errorf("Role = %s, want %s", claims.Role, model.Student)
	}
	if claims.Email != "student@example.com" {
		t.Errorf("Email = %s, want student@example.com", claims.Email)
	}

	if _, err := ParseJWT(tokenString, "wrong-secret"); err == nil {
		t.Error("ParseJWT() with wrong secret succeeded, want error")
	}
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	user := &model.User{Email: "a@b.c", Role: model.Student}
	user.ID = 1
	secret := "test-secret-test-secret-test-secret"

	tokenString, err := GenerateJWT(user, secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if _, err := ParseJWT(tokenString, secret); err == nil {
		t.Error("ParseJWT() accepted expired token")
	}
}

func TestParseJWTRejectsForeignIssuer(t *testing.T) {
	secret := "test-secret-test-secret-test-secret"
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "some-other-service",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := foreign.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	if _, err := ParseJWT(tokenString, secret); err == nil {
		t.Error("ParseJWT() accepted token from foreign issuer")
	}
}

func TestParseJWTRejectsUnsignedToken(t *testing.T) {
	secret := "test-secret-test-secret-test-secret"
	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	if _, err := ParseJWT(tokenString, secret); err == nil {
		t.Error("ParseJWT() accepted unsigned token")
	}
}
