package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

const (
	bcryptCost = 10
	tokenTTL   = 24 * time.Hour
)

// Service issues and verifies HMAC-signed tokens and owns the
// register/login flows. The core never parses raw credentials past
// this boundary.
type Service struct {
	hmac  []byte
	users UserStore
}

func NewService(secret string, users UserStore) *Service {
	return &Service{hmac: []byte(secret), users: users}
}

type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) IssueJWT(u User) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "aibio",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.hmac)
}

// Parse verifies a token and resolves its claims into a principal.
func (s *Service) Parse(tokenStr string) (rbac.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.hmac, nil
	})
	if err != nil || !token.Valid {
		return rbac.Principal{}, apperr.Unauthorized("invalid token")
	}
	c, ok := token.Claims.(*Claims)
	if !ok {
		return rbac.Principal{}, apperr.Unauthorized("invalid token")
	}
	role, ok := rbac.ParseRole(c.Role)
	if !ok {
		return rbac.Principal{}, apperr.Unauthorized("invalid token")
	}
	return rbac.Principal{ID: c.ID, Username: c.Username, Role: role}, nil
}

// Register creates a user with a bcrypt-hashed password. Duplicate
// usernames surface as a conflict.
func (s *Service) Register(ctx context.Context, username, password, roleStr string) (User, error) {
	if username == "" || password == "" || roleStr == "" {
		return User{}, apperr.Validationf("username, password and role are required")
	}
	role, ok := rbac.ParseRole(roleStr)
	if !ok {
		return User{}, apperr.Validationf("role must be %q or %q", rbac.RoleStudent, rbac.RoleTeacher)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, apperr.Internal("failed to register", err)
	}
	return s.users.CreateUser(ctx, username, string(hash), role)
}

// Login verifies credentials and returns the user with a fresh token.
// The error message never reveals which of the two fields was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (User, string, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return User{}, "", apperr.Unauthorized("invalid username or password")
		}
		return User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, "", apperr.Unauthorized("invalid username or password")
	}
	tok, err := s.IssueJWT(u)
	if err != nil {
		return User{}, "", apperr.Internal("failed to issue token", err)
	}
	return u, tok, nil
}
