package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/jobboard/internal/core/domain"
)

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateJobInput struct {
	Title        string         `json:"title" validate:"required"`
	CompanyName  string         `json:"companyName"`
	Location     string         `json:"location" validate:"required"`
	Salary       int64          `json:"salary" validate:"required,gt=0"`
	Type         domain.JobType `json:"type" validate:"required,oneof=full-time part-time internship contract"`
	Description  string         `json:"description" validate:"required"`
	Requirements string         `json:"requirements"`
}

// UpdateJobInput is a partial update; nil fields are left untouched.
type UpdateJobInput struct {
	Title        *string         `json:"title" validate:"omitnil,min=1"`
	CompanyName  *string         `json:"companyName"`
	Location     *string         `json:"location" validate:"omitnil,min=1"`
	Salary       *int64          `json:"salary" validate:"omitnil,gt=0"`
	Type         *domain.JobType `json:"type" validate:"omitnil,oneof=full-time part-time internship contract"`
	Description  *string         `json:"description" validate:"omitnil,min=1"`
	Requirements *string         `json:"requirements"`
}

type JobService interface {
	Create(ctx context.Context, caller domain.Identity, input CreateJobInput) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	Update(ctx context.Context, id string, caller domain.Identity, input UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, id string, caller domain.Identity) error
}
