package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

type SQLUserStore struct {
	db *sql.DB
}

func NewSQLUserStore(db *sql.DB) *SQLUserStore { return &SQLUserStore{db: db} }

func (s *SQLUserStore) CreateUser(ctx context.Context, username, passwordHash string, role rbac.Role) (User, error) {
	now := time.Now()
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username,password,role,created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		username, passwordHash, string(role), now.Unix(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, apperr.Conflictf("user %q already exists", username)
		}
		return User{}, apperr.Internal("failed to create user", err)
	}
	return User{ID: id, Username: username, PasswordHash: passwordHash, Role: role, CreatedAt: now}, nil
}

func (s *SQLUserStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var (
		u       User
		roleStr string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id,username,password,role,created_at FROM users WHERE username=$1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &roleStr, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, apperr.NotFoundf("user %q not found", username)
		}
		return User{}, apperr.Internal("failed to load user", err)
	}
	u.Role = rbac.Role(roleStr)
	u.CreatedAt = time.Unix(created, 0)
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	// modernc sqlite reports constraint failures by message only.
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
