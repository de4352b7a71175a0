package drives

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusdrive/campusdrive/internal/platform/httpx"
)

// RepositoryPort defines data access methods for drives.
type RepositoryPort interface {
	List(ctx context.Context, freeOnly bool) ([]Drive, error)
	Get(ctx context.Context, id string) (*Drive, error)
	Create(ctx context.Context, drive *Drive) error
	Update(ctx context.Context, drive *Drive) error
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

const driveColumns = `id, company_name, role_title, description, eligibility, location, salary,
	to_char(apply_deadline, 'YYYY-MM-DD'), apply_link, package_level, is_free, posted_by, posted_by_id, posted_at`

func scanDrive(row pgx.Row) (*Drive, error) {
	var d Drive
	if err := row.Scan(&d.ID, &d.CompanyName, &d.Role, &d.Description, &d.Eligibility, &d.Location,
		&d.Salary, &d.ApplyDeadline, &d.ApplyLink, &d.PackageLevel, &d.IsFree, &d.PostedBy, &d.PostedByID, &d.PostedAt); err != nil {
		return nil, err
	}
	if d.Eligibility == nil {
		d.Eligibility = []string{}
	}
	return &d, nil
}

// List returns drives newest first, optionally restricted to free ones.
func (r *Repository) List(ctx context.Context, freeOnly bool) ([]Drive, error) {
	query := `SELECT ` + driveColumns + ` FROM drives`
	if freeOnly {
		query += ` WHERE is_free`
	}
	query += ` ORDER BY posted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drives := []Drive{}
	for rows.Next() {
		d, err := scanDrive(rows)
		if err != nil {
			return nil, err
		}
		drives = append(drives, *d)
	}
	return drives, rows.Err()
}

// Get fetches a single drive.
func (r *Repository) Get(ctx context.Context, id string) (*Drive, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+driveColumns+` FROM drives WHERE id = $1`, id)
	d, err := scanDrive(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Create inserts a drive row.
func (r *Repository) Create(ctx context.Context, drive *Drive) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO drives (id, company_name, role_title, description, eligibility, location, salary, apply_deadline, apply_link, package_level, is_free, posted_by, posted_by_id, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9, $10, $11, $12, $13, $14)`,
		drive.ID, drive.CompanyName, drive.Role, drive.Description, drive.Eligibility, drive.Location,
		drive.Salary, drive.ApplyDeadline, drive.ApplyLink, drive.PackageLevel, drive.IsFree,
		drive.PostedBy, drive.PostedByID, drive.PostedAt)
	return err
}

// Update overwrites the mutable fields of a drive.
func (r *Repository) Update(ctx context.Context, drive *Drive) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE drives SET company_name = $2, role_title = $3, description = $4, eligibility = $5, location = $6,
		 salary = $7, apply_deadline = $8::date, apply_link = $9, package_level = $10, is_free = $11 WHERE id = $1`,
		drive.ID, drive.CompanyName, drive.Role, drive.Description, drive.Eligibility, drive.Location,
		drive.Salary, drive.ApplyDeadline, drive.ApplyLink, drive.PackageLevel, drive.IsFree)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes a drive row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drives WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
