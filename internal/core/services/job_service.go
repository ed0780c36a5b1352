package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
	"github.com/vncsmyrnk/jobboard/internal/telemetry"
)

type jobService struct {
	repo   ports.JobRepository
	logger *zap.Logger
}

func NewJobService(repo ports.JobRepository, logger *zap.Logger) ports.JobService {
	return &jobService{
		repo:   repo,
		logger: logger,
	}
}

func (s *jobService) Create(ctx context.Context, caller domain.Identity, input ports.CreateJobInput) (_ *domain.Job, err error) {
	ctx, span := tracer.Start(ctx, "JobService.Create")
	defer func() { finishSpan(span, err) }()

	if !caller.Is(domain.RoleEmployer) {
		return nil, domain.Forbidden("only employers can create job posts", nil)
	}

	input.Title = strings.TrimSpace(input.Title)
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Location = strings.TrimSpace(input.Location)
	input.Description = strings.TrimSpace(input.Description)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:        input.Title,
		CompanyName:  input.CompanyName,
		Location:     input.Location,
		Salary:       input.Salary,
		Type:         input.Type,
		Description:  input.Description,
		Requirements: input.Requirements,
		PostedBy:     caller.UserID,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("session user no longer exists", nil)
		}
		return nil, domain.Internal("failed to create job", err)
	}

	span.SetAttributes(telemetry.String("job.id", job.ID.String()))
	s.logger.Info("job created", zap.String("job_id", job.ID.String()), zap.String("employer_id", caller.UserID.String()))

	// Re-read to attach the employer summary.
	return s.get(ctx, job.ID)
}

func (s *jobService) List(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list jobs", err)
	}
	return jobs, nil
}

func (s *jobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	jobID, err := parseID(id, "job")
	if err != nil {
		return nil, err
	}
	return s.get(ctx, jobID)
}

func (s *jobService) Update(ctx context.Context, id string, caller domain.Identity, input ports.UpdateJobInput) (_ *domain.Job, err error) {
	ctx, span := tracer.Start(ctx, "JobService.Update")
	defer func() { finishSpan(span, err) }()

	job, err := s.ownedJob(ctx, id, caller, "update")
	if err != nil {
		return nil, err
	}

	trimPtr(input.Title)
	trimPtr(input.CompanyName)
	trimPtr(input.Location)
	trimPtr(input.Description)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.CompanyName != nil {
		job.CompanyName = *input.CompanyName
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Salary != nil {
		job.Salary = *input.Salary
	}
	if input.Type != nil {
		job.Type = *input.Type
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = *input.Requirements
	}

	if err := s.repo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("job not found", nil)
		}
		return nil, domain.Internal("failed to update job", err)
	}

	s.logger.Info("job updated", zap.String("job_id", job.ID.String()))
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, id string, caller domain.Identity) (err error) {
	ctx, span := tracer.Start(ctx, "JobService.Delete")
	defer func() { finishSpan(span, err) }()

	job, err := s.ownedJob(ctx, id, caller, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("job not found", nil)
		}
		return domain.Internal("failed to delete job", err)
	}

	s.logger.Info("job deleted", zap.String("job_id", job.ID.String()))
	return nil
}

// ownedJob loads the job and checks that the caller is the employer who
// posted it.
func (s *jobService) ownedJob(ctx context.Context, id string, caller domain.Identity, action string) (*domain.Job, error) {
	jobID, err := parseID(id, "job")
	if err != nil {
		return nil, err
	}

	job, err := s.get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !caller.Owns(job) {
		return nil, domain.Forbidden("you are not authorized to "+action+" this job", nil)
	}
	return job, nil
}

func (s *jobService) get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("job not found", nil)
		}
		return nil, domain.Internal("failed to get job", err)
	}
	return job, nil
}

func parseID(id string, entity string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.InvalidInput("invalid "+entity+" id", nil)
	}
	return parsed, nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
