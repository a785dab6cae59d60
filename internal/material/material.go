// Package material is the content-store sibling of the quiz subsystem.
// It shares the quiz authorization pattern: teachers create, everyone
// authenticated reads.
package material

import (
	"context"
	"time"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
	"github.com/MakazhanAlpamys/aibio/internal/rbac"
)

type Material struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	TeacherID   int64     `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Store interface {
	CreateMaterial(ctx context.Context, m Material) (Material, error)
	GetMaterial(ctx context.Context, id int64) (Material, error)
	ListMaterials(ctx context.Context) ([]Material, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

func (s *Service) Create(ctx context.Context, p rbac.Principal, title, content string) (Material, error) {
	if p.Role != rbac.RoleTeacher {
		return Material{}, apperr.Forbidden("only teachers can create materials")
	}
	if title == "" || content == "" {
		return Material{}, apperr.Validationf("title and content are required")
	}
	return s.store.CreateMaterial(ctx, Material{Title: title, Content: content, TeacherID: p.ID})
}

func (s *Service) Get(ctx context.Context, id int64) (Material, error) {
	return s.store.GetMaterial(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Material, error) {
	return s.store.ListMaterials(ctx)
}
