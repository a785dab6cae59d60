package auth_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/auth"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

type fakeUserStore struct {
	byName map[string]auth.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byName: map[string]auth.User{}}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, username, passwordHash string, role rbac.Role) (auth.User, error) {
	if _, ok := s.byName[username]; ok {
		return auth.User{}, apperr.Conflictf("user %q already exists", username)
	}
	s.nextID++
	u := auth.User{ID: s.nextID, Username: username, PasswordHash: passwordHash, Role: role}
	s.byName[username] = u
	return u, nil
}

func (s *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (auth.User, error) {
	u, ok := s.byName[username]
	if !ok {
		return auth.User{}, apperr.NotFoundf("user %q not found", username)
	}
	return u, nil
}

func TestRegister_HashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := auth.NewService("test-secret", store)

	u, err := svc.Register(context.Background(), "aigerim", "s3cret", "student")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != rbac.RoleStudent {
		t.Errorf("role: got %q", u.Role)
	}
	if u.PasswordHash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) != nil {
		t.Fatal("stored hash does not verify the password")
	}
}

func TestRegister_Invalid(t *testing.T) {
	svc := auth.NewService("test-secret", newFakeUserStore())
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
		role     string
	}{
		{"missing username", "", "pw", "student"},
		{"missing password", "u", "", "student"},
		{"missing role", "u", "pw", ""},
		{"unknown role", "u", "pw", "admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password, tc.role)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := auth.NewService("test-secret", newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "aigerim", "pw", "student"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "aigerim", "pw2", "teacher")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc := auth.NewService("test-secret", newFakeUserStore())
	ctx := context.Background()

	reg, err := svc.Register(ctx, "mr-petrov", "chalk", "teacher")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, tok, err := svc.Login(ctx, "mr-petrov", "chalk")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != reg.ID {
		t.Errorf("user id: got %d want %d", u.ID, reg.ID)
	}
	p, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.ID != reg.ID || p.Username != "mr-petrov" || p.Role != rbac.RoleTeacher {
		t.Errorf("principal mismatch: %+v", p)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := auth.NewService("test-secret", newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "aigerim", "pw", "student"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown user fail identically.
	_, _, err1 := svc.Login(ctx, "aigerim", "wrong")
	_, _, err2 := svc.Login(ctx, "nobody", "pw")
	for i, err := range []error{err1, err2} {
		if apperr.KindOf(err) != apperr.KindUnauthorized {
			t.Fatalf("case %d: want unauthorized, got %v", i, err)
		}
	}
	if err1.Error() != err2.Error() {
		t.Errorf("messages must not reveal which field was wrong: %q vs %q", err1, err2)
	}
}

func TestParse_RejectsTamperedToken(t *testing.T) {
	svc := auth.NewService("test-secret", newFakeUserStore())
	other := auth.NewService("other-secret", newFakeUserStore())

	u, err := svc.Register(context.Background(), "aigerim", "pw", "student")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, err := svc.IssueJWT(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Parse(tok); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("token signed with another secret must be rejected, got %v", err)
	}
}
