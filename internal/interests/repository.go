package interests

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access methods for drive interests.
type RepositoryPort interface {
	Create(ctx context.Context, in *Interest) error
	FindByUserAndDrive(ctx context.Context, userID, driveID string) (*Interest, error)
	ListByUser(ctx context.Context, userID string) ([]Interest, error)
	ListByDrive(ctx context.Context, driveID string) ([]Interest, error)
	CountByDrive(ctx context.Context) (map[string]int, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const interestColumns = `pass_id, user_id, drive_id, user_name, student_id, created_at`

func scanInterest(row pgx.Row) (*Interest, error) {
	var in Interest
	if err := row.Scan(&in.PassID, &in.UserID, &in.DriveID, &in.UserName, &in.StudentID, &in.CreatedAt); err != nil {
		return nil, err
	}
	return &in, nil
}

// Create inserts an interest row.
func (r *Repository) Create(ctx context.Context, in *Interest) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO drive_interests (pass_id, user_id, drive_id, user_name, student_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		in.PassID, in.UserID, in.DriveID, in.UserName, in.StudentID, in.CreatedAt)
	return err
}

// FindByUserAndDrive returns the existing pass for the pair, or nil.
func (r *Repository) FindByUserAndDrive(ctx context.Context, userID, driveID string) (*Interest, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+interestColumns+` FROM drive_interests WHERE user_id = $1 AND drive_id = $2`, userID, driveID)
	in, err := scanInterest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return in, nil
}

// ListByUser returns all passes held by one user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Interest, error) {
	return r.list(ctx, `SELECT `+interestColumns+` FROM drive_interests WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListByDrive returns all passes issued for one drive, oldest first so
// the admin sees registration order.
func (r *Repository) ListByDrive(ctx context.Context, driveID string) ([]Interest, error) {
	return r.list(ctx, `SELECT `+interestColumns+` FROM drive_interests WHERE drive_id = $1 ORDER BY created_at ASC`, driveID)
}

func (r *Repository) list(ctx context.Context, query string, arg string) ([]Interest, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Interest{}
	for rows.Next() {
		in, err := scanInterest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *in)
	}
	return list, rows.Err()
}

// CountByDrive returns the number of passes per drive id.
func (r *Repository) CountByDrive(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT drive_id, COUNT(*) FROM drive_interests GROUP BY drive_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
