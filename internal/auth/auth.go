// Package auth covers credentials: password hashing, JWT issue/verify
// and the HTTP middleware that guards protected routes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskblog/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const bearerPrefix = "Bearer "

type contextKey string

const ctxKeyAuthUser contextKey = "auth_user"

type Config struct {
	Secret    string
	ExpiresIn time.Duration
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims carried in every issued token. Subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Username string          `json:"username,omitempty"`
	Email    string          `json:"email,omitempty"`
	Role     models.UserRole `json:"role,omitempty"`
}

func GenerateToken(cfg Config, user *models.User) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.ExpiresIn)),
		},
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

func ParseToken(cfg Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearer returns the token part of an Authorization header value.
// The "Bearer " prefix is matched exactly, case sensitive; anything else
// yields an empty string.
func ExtractBearer(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return header[len(bearerPrefix):]
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKeyAuthUser, user)
}

func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(ctxKeyAuthUser).(*models.User)
	return user
}

// CanModify implements the ownership rule shared by post update/delete:
// the resource owner may act, and admins bypass the check.
func CanModify(user *models.User, ownerID string) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || user.ID == ownerID
}
