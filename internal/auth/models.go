package auth

import (
	"context"
	"time"

	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         rbac.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserStore is the identity persistence boundary.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string, role rbac.Role) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}
