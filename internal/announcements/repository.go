package announcements

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
)

// Visibility filters announcement listings.
type Visibility string

const (
	VisibilityAll     Visibility = ""
	VisibilityPublic  Visibility = "public"
	VisibilityStudent Visibility = "student"
)

// RepositoryPort defines data access methods for announcements.
type RepositoryPort interface {
	List(ctx context.Context, visibility Visibility) ([]Announcement, error)
	Get(ctx context.Context, id string) (*Announcement, error)
	Create(ctx context.Context, a *Announcement) error
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const annoColumns = `id, title, content, is_public, posted_by, posted_by_id, posted_at`

// List returns announcements newest first, optionally filtered.
func (r *Repository) List(ctx context.Context, visibility Visibility) ([]Announcement, error) {
	query := `SELECT ` + annoColumns + ` FROM announcements`
	switch visibility {
	case VisibilityPublic:
		query += ` WHERE is_public`
	case VisibilityStudent:
		query += ` WHERE NOT is_public`
	}
	query += ` ORDER BY posted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Announcement{}
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.IsPublic, &a.PostedBy, &a.PostedByID, &a.PostedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Get fetches a single announcement.
func (r *Repository) Get(ctx context.Context, id string) (*Announcement, error) {
	var a Announcement
	err := r.pool.QueryRow(ctx, `SELECT `+annoColumns+` FROM announcements WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.Content, &a.IsPublic, &a.PostedBy, &a.PostedByID, &a.PostedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts an announcement row.
func (r *Repository) Create(ctx context.Context, a *Announcement) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO announcements (id, title, content, is_public, posted_by, posted_by_id, posted_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Title, a.Content, a.IsPublic, a.PostedBy, a.PostedByID, a.PostedAt)
	return err
}

// Update overwrites the mutable fields.
func (r *Repository) Update(ctx context.Context, a *Announcement) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE announcements SET title = $2, content = $3, is_public = $4 WHERE id = $1`,
		a.ID, a.Title, a.Content, a.IsPublic)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes an announcement row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
