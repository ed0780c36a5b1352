package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

type jobRepository struct {
	db *DB
}

func NewJobRepository(db *DB) ports.JobRepository {
	return &jobRepository{
		db: db,
	}
}

const selectJobs = `
	SELECT j.id, j.title, j.company_name, j.location, j.salary, j.type, j.description,
	       j.requirements, j.posted_by, j.created_at, j.updated_at,
	       u.id, u.full_name, u.email
	FROM jobs j
	JOIN users u ON u.id = j.posted_by
`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `
		INSERT INTO jobs (id, title, company_name, location, salary, type, description, requirements, posted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.exec(ctx, query,
		job.ID, job.Title, job.CompanyName, job.Location, job.Salary, string(job.Type),
		job.Description, job.Requirements, job.PostedBy, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := scanJob(r.db.queryRow(ctx, selectJobs+` WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (r *jobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	rows, err := r.db.query(ctx, selectJobs+` ORDER BY j.created_at DESC, j.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	query := `
		UPDATE jobs
		SET title = $1, company_name = $2, location = $3, salary = $4, type = $5,
		    description = $6, requirements = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.db.exec(ctx, query,
		job.Title, job.CompanyName, job.Location, job.Salary, string(job.Type),
		job.Description, job.Requirements, job.UpdatedAt, job.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the job. Its applications go with it through the
// ON DELETE CASCADE foreign key.
func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job      domain.Job
		jobType  string
		employer domain.UserSummary
	)
	err := row.Scan(
		&job.ID, &job.Title, &job.CompanyName, &job.Location, &job.Salary, &jobType, &job.Description,
		&job.Requirements, &job.PostedBy, &job.CreatedAt, &job.UpdatedAt,
		&employer.ID, &employer.FullName, &employer.Email,
	)
	if err != nil {
		return nil, err
	}
	job.Type = domain.JobType(jobType)
	job.Employer = &employer
	return &job, nil
}
