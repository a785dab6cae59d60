package material

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MakazhanAlpamys/aibio/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) CreateMaterial(ctx context.Context, m Material) (Material, error) {
	now := time.Now()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO materials (title,content,teacher_id,created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		m.Title, m.Content, m.TeacherID, now.Unix(),
	).Scan(&m.ID)
	if err != nil {
		return Material{}, apperr.Internal("failed to create material", err)
	}
	m.CreatedAt = now
	return m, nil
}

func (s *SQLStore) GetMaterial(ctx context.Context, id int64) (Material, error) {
	var (
		m       Material
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT m.id, m.title, m.content, m.teacher_id, u.username, m.created_at
		   FROM materials m JOIN users u ON m.teacher_id = u.id
		  WHERE m.id = $1`, id,
	).Scan(&m.ID, &m.Title, &m.Content, &m.TeacherID, &m.TeacherName, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Material{}, apperr.NotFoundf("material %d not found", id)
		}
		return Material{}, apperr.Internal("failed to load material", err)
	}
	m.CreatedAt = time.Unix(created, 0)
	return m, nil
}

func (s *SQLStore) ListMaterials(ctx context.Context) ([]Material, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.content, m.teacher_id, u.username, m.created_at
		   FROM materials m JOIN users u ON m.teacher_id = u.id
		  ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, apperr.Internal("failed to list materials", err)
	}
	defer rows.Close()

	out := []Material{}
	for rows.Next() {
		var (
			m       Material
			created int64
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.TeacherID, &m.TeacherName, &created); err != nil {
			return nil, apperr.Internal("failed to list materials", err)
		}
		m.CreatedAt = time.Unix(created, 0)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list materials", err)
	}
	return out, nil
}
