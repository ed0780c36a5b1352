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

type applicationService struct {
	jobRepo ports.JobRepository
	appRepo ports.ApplicationRepository
	logger  *zap.Logger
}

func NewApplicationService(jobRepo ports.JobRepository, appRepo ports.ApplicationRepository, logger *zap.Logger) ports.ApplicationService {
	return &applicationService{
		jobRepo: jobRepo,
		appRepo: appRepo,
		logger:  logger,
	}
}

// Apply records a pending application. Duplicate (job, applicant) pairs are
// rejected by the store's unique index, so two concurrent applies cannot
// both succeed.
func (s *applicationService) Apply(ctx context.Context, caller domain.Identity, input ports.ApplyInput) (_ *domain.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Apply")
	defer func() { finishSpan(span, err) }()

	if !caller.Is(domain.RoleStudent) {
		return nil, domain.Forbidden("only students can apply to jobs", nil)
	}

	input.JobID = strings.TrimSpace(input.JobID)
	input.ResumeURL = strings.TrimSpace(input.ResumeURL)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	jobID, err := parseID(input.JobID, "job")
	if err != nil {
		return nil, err
	}
	span.SetAttributes(telemetry.String("job.id", jobID.String()))

	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("job not found", nil)
		}
		return nil, domain.Internal("failed to get job", err)
	}

	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: caller.UserID,
		Status:      domain.StatusPending,
		ResumeURL:   input.ResumeURL,
		CoverLetter: input.CoverLetter,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, domain.Conflict("you already applied to this job", nil)
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NotFound("job not found", nil)
		}
		return nil, domain.Internal("failed to save application", err)
	}

	s.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.String("student_id", caller.UserID.String()))

	return s.get(ctx, app.ID)
}

func (s *applicationService) ListMine(ctx context.Context, caller domain.Identity) ([]*domain.Application, error) {
	if !caller.Is(domain.RoleStudent) {
		return nil, domain.Forbidden("only students can view their applications", nil)
	}

	apps, err := s.appRepo.ListByApplicant(ctx, caller.UserID)
	if err != nil {
		return nil, domain.Internal("failed to list applications", err)
	}
	return apps, nil
}

func (s *applicationService) ListForEmployer(ctx context.Context, caller domain.Identity) ([]*domain.Application, error) {
	if !caller.Is(domain.RoleEmployer) {
		return nil, domain.Forbidden("only employers can view job applications", nil)
	}

	apps, err := s.appRepo.ListByEmployer(ctx, caller.UserID)
	if err != nil {
		return nil, domain.Internal("failed to list applications", err)
	}
	return apps, nil
}

func (s *applicationService) ListApplicants(ctx context.Context, jobID string, caller domain.Identity) ([]*domain.Application, error) {
	id, err := parseID(jobID, "job")
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("job not found", nil)
		}
		return nil, domain.Internal("failed to get job", err)
	}
	if !caller.Owns(job) {
		return nil, domain.Forbidden("you are not authorized to view applicants for this job", nil)
	}

	apps, err := s.appRepo.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, domain.Internal("failed to list applicants", err)
	}
	return apps, nil
}

// UpdateStatus sets any valid status; there is no transition guard, so the
// owning employer may move an application back and forth.
func (s *applicationService) UpdateStatus(ctx context.Context, id string, caller domain.Identity, status domain.ApplicationStatus) (_ *domain.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.UpdateStatus")
	defer func() { finishSpan(span, err) }()

	if !caller.Is(domain.RoleEmployer) {
		return nil, domain.Forbidden("only employers can update application status", nil)
	}
	if !status.Valid() {
		return nil, domain.InvalidInput("status must be one of: pending accepted rejected", nil)
	}
	appID, err := parseID(id, "application")
	if err != nil {
		return nil, err
	}

	app, err := s.get(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.Job == nil || app.Job.PostedBy != caller.UserID {
		return nil, domain.Forbidden("you are not authorized to update this application", nil)
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("application not found", nil)
		}
		return nil, domain.Internal("failed to update application status", err)
	}

	s.logger.Info("application status updated",
		zap.String("application_id", app.ID.String()),
		zap.String("from", string(app.Status)),
		zap.String("to", string(status)))

	return s.get(ctx, app.ID)
}

// Withdraw hard-deletes the application. It is allowed from any status.
func (s *applicationService) Withdraw(ctx context.Context, id string, caller domain.Identity) (err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Withdraw")
	defer func() { finishSpan(span, err) }()

	if !caller.Is(domain.RoleStudent) {
		return domain.Forbidden("only students can withdraw applications", nil)
	}
	appID, err := parseID(id, "application")
	if err != nil {
		return err
	}

	app, err := s.get(ctx, appID)
	if err != nil {
		return err
	}
	if app.ApplicantID != caller.UserID {
		return domain.Forbidden("you are not authorized to delete this application", nil)
	}

	if err := s.appRepo.Delete(ctx, app.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("application not found", nil)
		}
		return domain.Internal("failed to delete application", err)
	}

	s.logger.Info("application withdrawn", zap.String("application_id", app.ID.String()))
	return nil
}

func (s *applicationService) get(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("application not found", nil)
		}
		return nil, domain.Internal("failed to get application", err)
	}
	return app, nil
}
