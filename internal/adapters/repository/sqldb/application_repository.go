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

type applicationRepository struct {
	db *DB
}

func NewApplicationRepository(db *DB) ports.ApplicationRepository {
	return &applicationRepository{
		db: db,
	}
}

// Every read joins the job and the applicant so callers get both summaries
// and can check job ownership without a second query.
const selectApplications = `
	SELECT a.id, a.job_id, a.applicant_id, a.status, a.resume_url, a.cover_letter, a.created_at, a.updated_at,
	       j.id, j.title, j.company_name, j.location, j.type, j.salary, j.posted_by,
	       u.id, u.full_name, u.email
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users u ON u.id = a.applicant_id
`

const newestFirst = ` ORDER BY a.created_at DESC, a.id`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	app.CreatedAt = now
	app.UpdatedAt = now

	query := `
		INSERT INTO applications (id, job_id, applicant_id, status, resume_url, cover_letter, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.exec(ctx, query,
		app.ID, app.JobID, app.ApplicantID, string(app.Status), app.ResumeURL, app.CoverLetter, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := scanApplication(r.db.queryRow(ctx, selectApplications+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*domain.Application, error) {
	return r.list(ctx, selectApplications+` WHERE a.applicant_id = $1`+newestFirst, applicantID)
}

// ListByEmployer returns applications to every job posted by the employer in
// a single statement, so the result reflects job ownership at query time.
func (r *applicationRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*domain.Application, error) {
	return r.list(ctx, selectApplications+` WHERE j.posted_by = $1`+newestFirst, employerID)
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*domain.Application, error) {
	return r.list(ctx, selectApplications+` WHERE a.job_id = $1`+newestFirst, jobID)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error {
	query := `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.exec(ctx, query, string(status), time.Now().UTC().Truncate(time.Microsecond), id)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
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

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
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

func (r *applicationRepository) list(ctx context.Context, query string, arg any) ([]*domain.Application, error) {
	rows, err := r.db.query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var (
		app       domain.Application
		status    string
		jobType   string
		job       domain.JobSummary
		applicant domain.UserSummary
	)
	err := row.Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &status, &app.ResumeURL, &app.CoverLetter, &app.CreatedAt, &app.UpdatedAt,
		&job.ID, &job.Title, &job.CompanyName, &job.Location, &jobType, &job.Salary, &job.PostedBy,
		&applicant.ID, &applicant.FullName, &applicant.Email,
	)
	if err != nil {
		return nil, err
	}
	app.Status = domain.ApplicationStatus(status)
	job.Type = domain.JobType(jobType)
	app.Job = &job
	app.Applicant = &applicant
	return &app, nil
}
