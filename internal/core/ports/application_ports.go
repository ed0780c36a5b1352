package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/jobboard/internal/core/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*domain.Application, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*domain.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplyInput struct {
	JobID       string `json:"jobId" validate:"required,uuid"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,url"`
	CoverLetter string `json:"coverLetter"`
}

type ApplicationService interface {
	Apply(ctx context.Context, caller domain.Identity, input ApplyInput) (*domain.Application, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]*domain.Application, error)
	ListForEmployer(ctx context.Context, caller domain.Identity) ([]*domain.Application, error)
	ListApplicants(ctx context.Context, jobID string, caller domain.Identity) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id string, caller domain.Identity, status domain.ApplicationStatus) (*domain.Application, error)
	Withdraw(ctx context.Context, id string, caller domain.Identity) error
}
