package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hireline/models"
)

// sessionCookie carries the admin token for the server-rendered pages; the
// API also accepts the same token as a Bearer header.
const sessionCookie = "hireline_session"

const sessionTTL = 24 * time.Hour

// AuthService checks dashboard credentials and mints/verifies session tokens.
type AuthService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{db: db, secret: []byte(secret)}
}

// Authenticate returns the admin account for the given credentials. The error
// is the same for unknown email and wrong password.
func (a *AuthService) Authenticate(email, password string) (*models.AdminUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var user models.AdminUser
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &user, nil
}

// IssueToken mints a signed session token for an admin account.
func (a *AuthService) IssueToken(user *models.AdminUser) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.Email,
		"is_admin": true,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString(a.secret)
}

// VerifyToken parses a session token and returns the admin email. Expired or
// tampered tokens fail; the is_admin claim must be present and true.
func (a *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
		return "", fmt.Errorf("not an admin session")
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return "", fmt.Errorf("invalid claims")
	}
	return email, nil
}
