package alumni

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
)

// RepositoryPort defines data access methods for alumni records.
type RepositoryPort interface {
	List(ctx context.Context) ([]Alumnus, error)
	Get(ctx context.Context, id string) (*Alumnus, error)
	Create(ctx context.Context, a *Alumnus) error
	Update(ctx context.Context, a *Alumnus) error
	Delete(ctx context.Context, id string) error
	PhotoKeys(ctx context.Context) ([]string, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const alumColumns = `id, name, company_name, to_char(placement_date, 'YYYY-MM-DD'), package, photo_key, posted_by, posted_by_id, posted_at`

func scanAlumnus(row pgx.Row) (*Alumnus, error) {
	var a Alumnus
	if err := row.Scan(&a.ID, &a.Name, &a.CompanyName, &a.PlacementDate, &a.Package,
		&a.PhotoKey, &a.PostedBy, &a.PostedByID, &a.PostedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns alumni newest first.
func (r *Repository) List(ctx context.Context) ([]Alumnus, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+alumColumns+` FROM alumni ORDER BY posted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Alumnus{}
	for rows.Next() {
		a, err := scanAlumnus(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// Get fetches a single alumni record.
func (r *Repository) Get(ctx context.Context, id string) (*Alumnus, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+alumColumns+` FROM alumni WHERE id = $1`, id)
	a, err := scanAlumnus(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Create inserts an alumni row.
func (r *Repository) Create(ctx context.Context, a *Alumnus) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO alumni (id, name, company_name, placement_date, package, photo_key, posted_by, posted_by_id, posted_at)
		 VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9)`,
		a.ID, a.Name, a.CompanyName, a.PlacementDate, a.Package, a.PhotoKey, a.PostedBy, a.PostedByID, a.PostedAt)
	return err
}

// Update overwrites the mutable fields.
func (r *Repository) Update(ctx context.Context, a *Alumnus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE alumni SET name = $2, company_name = $3, placement_date = $4::date, package = $5, photo_key = $6 WHERE id = $1`,
		a.ID, a.Name, a.CompanyName, a.PlacementDate, a.Package, a.PhotoKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes an alumni row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM alumni WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// PhotoKeys returns every referenced blob key. The photo sweep job uses
// this to find orphaned objects.
func (r *Repository) PhotoKeys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT photo_key FROM alumni WHERE photo_key <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
