package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kudagama/job-portal/internal/lifecycle"
	"github.com/kudagama/job-portal/internal/model"
	"github.com/kudagama/job-portal/internal/repository"
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrForbidden       = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidCategory = errors.New("unknown job category")
)

// MaxPageLimit caps an explicitly requested page size. Without an explicit
// limit the listing returns the full result set.
const MaxPageLimit = 100

// JobService defines operations for jobs
type JobService interface {
	CreateJob(ctx context.Context, userID int64, req model.CreateJobRequest) (*model.Job, error)
	GetJobs(ctx context.Context, filters model.JobFilters) ([]model.Job, error)
	GetJobByID(ctx context.Context, jobID int64) (*model.Job, error)
	GetMyJobs(ctx context.Context, userID int64) ([]model.JobWithDetailedStatus, error)
	UpdateJob(ctx context.Context, jobID, userID int64, req model.UpdateJobRequest) (*model.Job, error)
	DeleteJob(ctx context.Context, jobID, userID int64) error
}

type jobService struct {
	jobRepo repository.JobRepository
	appRepo repository.ApplicationRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository) JobService {
	return &jobService{jobRepo: jobRepo, appRepo: appRepo}
}

// CreateJob posts a new job owned by the calling employer
func (s *jobService) CreateJob(ctx context.Context, userID int64, req model.CreateJobRequest) (*model.Job, error) {
	category := req.Category
	if category == "" {
		category = "Other"
	}
	if !model.ValidJobCategory(category) {
		return nil, ErrInvalidCategory
	}
	budgetType := req.BudgetType
	if budgetType == "" {
		budgetType = model.BudgetTypeFixed
	}

	job := &model.Job{
		Title:        req.Title,
		Description:  req.Description,
		Category:     category,
		Budget:       req.Budget,
		BudgetType:   budgetType,
		Location:     req.Location,
		ContactPhone: req.ContactPhone,
		IsUrgent:     req.IsUrgent,
		Status:       model.JobStatusOpen,
		CreatedBy:    userID,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job in repo: %w", err)
	}
	return job, nil
}

// GetJobs lists open jobs matching the public listing filters. Pagination
// only kicks in when the caller supplies a limit; an unpaginated call
// returns every matching job.
func (s *jobService) GetJobs(ctx context.Context, filters model.JobFilters) ([]model.Job, error) {
	if filters.Limit < 0 {
		filters.Limit = 0
	}
	if filters.Limit > MaxPageLimit {
		filters.Limit = MaxPageLimit
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}

	jobs, err := s.jobRepo.FindOpen(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get open jobs from repo: %w", err)
	}
	return jobs, nil
}

// GetJobByID returns a single job
func (s *jobService) GetJobByID(ctx context.Context, jobID int64) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// GetMyJobs returns the caller's jobs with the derived detailed status.
// The projection also overrides a stale Open status once an accepted
// application exists.
func (s *jobService) GetMyJobs(ctx context.Context, userID int64) ([]model.JobWithDetailedStatus, error) {
	jobs, err := s.jobRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs by owner from repo: %w", err)
	}

	jobIDs := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
	}

	activeApps, err := s.appRepo.FindActiveByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get active applications from repo: %w", err)
	}

	result := make([]model.JobWithDetailedStatus, 0, len(jobs))
	for _, j := range jobs {
		p := lifecycle.ProjectDetailedStatus(j, activeApps)
		if p.Ambiguous {
			log.Printf("WARN: job %d has multiple accepted/finished applications, using earliest", j.ID)
		}
		j.Status = p.Status
		result = append(result, model.JobWithDetailedStatus{Job: j, DetailedStatus: p.DetailedStatus})
	}
	return result, nil
}

// UpdateJob applies partial updates by the owning employer. Ownership never
// changes.
func (s *jobService) UpdateJob(ctx context.Context, jobID, userID int64, req model.UpdateJobRequest) (*model.Job, error) {
	existingJob, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for update: %w", err)
	}
	if existingJob == nil {
		return nil, ErrJobNotFound
	}
	if existingJob.CreatedBy != userID { // Only owner can edit
		return nil, ErrForbidden
	}

	// Apply updates
	if req.Title != nil {
		existingJob.Title = *req.Title
	}
	if req.Description != nil {
		existingJob.Description = *req.Description
	}
	if req.Category != nil {
		if !model.ValidJobCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		existingJob.Category = *req.Category
	}
	if req.Budget != nil {
		existingJob.Budget = *req.Budget
	}
	if req.BudgetType != nil {
		existingJob.BudgetType = *req.BudgetType
	}
	if req.Location != nil {
		existingJob.Location = *req.Location
	}
	if req.ContactPhone != nil {
		existingJob.ContactPhone = *req.ContactPhone
	}
	if req.IsUrgent != nil {
		existingJob.IsUrgent = *req.IsUrgent
	}
	if req.Status != nil {
		existingJob.Status = *req.Status
	}

	if err := s.jobRepo.Update(ctx, existingJob); err != nil {
		return nil, fmt.Errorf("failed to update job in repo: %w", err)
	}
	return existingJob, nil
}

// DeleteJob removes a job owned by the caller
func (s *jobService) DeleteJob(ctx context.Context, jobID, userID int64) error {
	existingJob, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to find job for deletion: %w", err)
	}
	if existingJob == nil {
		return ErrJobNotFound
	}
	if existingJob.CreatedBy != userID {
		return ErrForbidden
	}
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("failed to delete job in repo: %w", err)
	}
	return nil
}
