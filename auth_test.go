package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hireline/models"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService(newTestDB(t), "test-secret")
	token, err := auth.IssueToken(&models.AdminUser{Email: "admin@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	email, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email != "admin@x.com" {
		t.Fatalf("email = %q", email)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	db := newTestDB(t)
	token, _ := NewAuthService(db, "secret-a").IssueToken(&models.AdminUser{Email: "admin@x.com"})
	if _, err := NewAuthService(db, "secret-b").VerifyToken(token); err == nil {
		t.Fatal("token verified across secrets")
	}
}

func TestTokenExpired(t *testing.T) {
	auth := NewAuthService(newTestDB(t), "test-secret")
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "admin@x.com",
		"is_admin": true,
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	tokenString, _ := expired.SignedString([]byte("test-secret"))
	if _, err := auth.VerifyToken(tokenString); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestTokenWithoutAdminClaim(t *testing.T) {
	auth := NewAuthService(newTestDB(t), "test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@x.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, _ := token.SignedString([]byte("test-secret"))
	if _, err := auth.VerifyToken(tokenString); err == nil {
		t.Fatal("token without is_admin claim verified")
	}
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	db.Create(&models.AdminUser{Email: "admin@x.com", HashedPassword: hashed})
	auth := NewAuthService(db, "test-secret")

	if _, err := auth.Authenticate("admin@x.com", "admin123"); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	// email lookup is case-insensitive
	if _, err := auth.Authenticate("Admin@X.com", "admin123"); err != nil {
		t.Fatalf("case-folded email rejected: %v", err)
	}
	if _, err := auth.Authenticate("admin@x.com", "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
	if _, err := auth.Authenticate("nobody@x.com", "admin123"); err == nil {
		t.Fatal("unknown email accepted")
	}
}
