package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudagama/job-portal/internal/lifecycle"
	"github.com/kudagama/job-portal/internal/model"
	"github.com/kudagama/job-portal/internal/repository"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("you have already applied for this job")
	ErrJobClosed            = errors.New("job is closed, no further action is possible")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// ApplicationService defines operations for applications
type ApplicationService interface {
	Apply(ctx context.Context, applicantID int64, req model.ApplyRequest) (*model.Application, error)
	GetMyApplications(ctx context.Context, applicantID int64) ([]model.MyApplication, error)
	GetJobApplications(ctx context.Context, jobID, callerID int64) ([]model.JobApplication, error)
	UpdateStatus(ctx context.Context, appID, callerID int64, status string) (*model.Application, error)
}

type applicationService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository) ApplicationService {
	return &applicationService{appRepo: appRepo, jobRepo: jobRepo}
}

// Apply creates a pending application for an open job. Closed jobs reject
// direct applications, not just through the listing.
func (s *applicationService) Apply(ctx context.Context, applicantID int64, req model.ApplyRequest) (*model.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for application: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.Status != model.JobStatusOpen {
		return nil, ErrJobClosed
	}

	existing, err := s.appRepo.FindByJobAndApplicant(ctx, req.JobID, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateApplication
	}

	app := &model.Application{
		JobID:       req.JobID,
		ApplicantID: applicantID,
		CoverLetter: req.CoverLetter,
		Status:      model.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application in repo: %w", err)
	}
	return app, nil
}

// GetMyApplications returns the caller's applications with job summaries
func (s *applicationService) GetMyApplications(ctx context.Context, applicantID int64) ([]model.MyApplication, error) {
	apps, err := s.appRepo.FindByApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications from repo: %w", err)
	}
	return apps, nil
}

// GetJobApplications returns all applications on a job. Only the job owner
// may see them.
func (s *applicationService) GetJobApplications(ctx context.Context, jobID, callerID int64) ([]model.JobApplication, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for applications: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	apps, err := s.appRepo.FindByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job applications from repo: %w", err)
	}
	return apps, nil
}

// UpdateStatus executes a lifecycle transition on an application. Only the
// owner of the application's job may trigger transitions. Accepting closes
// the job atomically; once a job is closed, accept and reject on other
// pending applications are refused.
func (s *applicationService) UpdateStatus(ctx context.Context, appID, callerID int64, status string) (*model.Application, error) {
	app, err := s.appRepo.FindByID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application for status update: %w", err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	job, err := s.jobRepo.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for status update: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	if err := lifecycle.CanTransition(app.Status, status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	switch status {
	case model.ApplicationStatusAccepted:
		if job.Status != model.JobStatusOpen {
			return nil, ErrJobClosed
		}
		if err := s.appRepo.Accept(ctx, app.ID, job.ID); err != nil {
			switch {
			case errors.Is(err, repository.ErrJobNotOpen):
				return nil, ErrJobClosed
			case errors.Is(err, repository.ErrStatusConflict):
				return nil, ErrInvalidTransition
			default:
				return nil, fmt.Errorf("failed to accept application: %w", err)
			}
		}
	case model.ApplicationStatusRejected:
		if job.Status != model.JobStatusOpen {
			return nil, ErrJobClosed
		}
		if err := s.appRepo.UpdateStatusIf(ctx, app.ID, model.ApplicationStatusPending, model.ApplicationStatusRejected); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return nil, ErrInvalidTransition
			}
			return nil, fmt.Errorf("failed to reject application: %w", err)
		}
	case model.ApplicationStatusFinished:
		if err := s.appRepo.UpdateStatusIf(ctx, app.ID, model.ApplicationStatusAccepted, model.ApplicationStatusFinished); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return nil, ErrInvalidTransition
			}
			return nil, fmt.Errorf("failed to finish application: %w", err)
		}
	default:
		return nil, ErrInvalidTransition
	}

	app.Status = status
	return app, nil
}
