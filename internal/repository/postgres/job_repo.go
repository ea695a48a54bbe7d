package postgres

import (
	"context"
	"fmt"
	"strings"

	"heyjob-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id::text, job_title, job_position, company_details, category, job_description, package, location, image, user_id, status, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// Create inserts the posting; id and both timestamps come from the database.
func (r *jobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	query := `INSERT INTO jobs (job_title, job_position, company_details, category, job_description, package, location, image, user_id, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now()) RETURNING id::text, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		job.JobTitle, job.JobPosition, job.CompanyDetails, string(job.Category), job.JobDescription,
		job.Package, job.Location, job.Image, job.UserID, string(job.Status),
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	return classify(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	// Ids are UUIDs; anything else can never match and would only raise a cast error
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, classify(err)
	}
	return job, nil
}

// Fetch runs a field-equality query. Rows come back oldest first, ties by id.
func (r *jobRepo) Fetch(ctx context.Context, q domain.JobQuery) ([]domain.JobPosting, error) {
	var (
		conditions []string
		args       []any
	)
	if q.Category != "" {
		args = append(args, string(q.Category))
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if q.UserID != "" {
		args = append(args, q.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if q.Status != "" {
		args = append(args, string(q.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	jobs := make([]domain.JobPosting, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, classify(err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return jobs, nil
}

// Update overwrites every user-editable field plus status in one statement.
func (r *jobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	if _, err := uuid.Parse(job.ID); err != nil {
		return domain.ErrNotFound
	}

	query := `UPDATE jobs SET
		job_title = $2,
		job_position = $3,
		company_details = $4,
		category = $5,
		job_description = $6,
		package = $7,
		location = $8,
		image = $9,
		status = $10,
		updated_at = now()
	WHERE id = $1
	RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		job.ID, job.JobTitle, job.JobPosition, job.CompanyDetails, string(job.Category),
		job.JobDescription, job.Package, job.Location, job.Image, string(job.Status),
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	return classify(err)
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Ping(ctx context.Context) error {
	return classify(r.db.Ping(ctx))
}

func scanJob(row pgx.Row) (*domain.JobPosting, error) {
	var (
		job      domain.JobPosting
		category string
		status   string
	)
	err := row.Scan(
		&job.ID, &job.JobTitle, &job.JobPosition, &job.CompanyDetails, &category, &job.JobDescription,
		&job.Package, &job.Location, &job.Image, &job.UserID, &status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Category = domain.Category(category)
	job.Status = domain.JobStatus(status)
	return &job, nil
}
