package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kudagama/job-portal/internal/model"

	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, description, category, budget, budget_type, location, contact_phone, is_urgent, status, created_by, created_at, updated_at`

// JobRepository defines operations for job data
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id int64) (*model.Job, error)
	FindOpen(ctx context.Context, filters model.JobFilters) ([]model.Job, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id int64) error
}

type jobRepository struct {
	db DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db DB) JobRepository {
	return &jobRepository{db: db}
}

func scanJob(row pgx.Row, j *model.Job) error {
	return row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Category, &j.Budget, &j.BudgetType,
		&j.Location, &j.ContactPhone, &j.IsUrgent, &j.Status, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt,
	)
}

// Create inserts a new job into the database
func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	sql := `INSERT INTO jobs (title, description, category, budget, budget_type, location, contact_phone, is_urgent, status, created_by)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		job.Title, job.Description, job.Category, job.Budget, job.BudgetType,
		job.Location, job.ContactPhone, job.IsUrgent, job.Status, job.CreatedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindByID retrieves a job by its ID
func (r *jobRepository) FindByID(ctx context.Context, id int64) (*model.Job, error) {
	j := &model.Job{}
	sql := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	if err := scanJob(r.db.QueryRow(ctx, sql, id), j); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}
	return j, nil
}

// FindOpen retrieves open jobs matching the listing filters, newest first
func (r *jobRepository) FindOpen(ctx context.Context, filters model.JobFilters) ([]model.Job, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + jobColumns + ` FROM jobs WHERE status = 'Open'`)
	args := []interface{}{}
	argCount := 1

	if filters.Keyword != nil && *filters.Keyword != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Keyword+"%")
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.BudgetType != nil && *filters.BudgetType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND budget_type = $%d", argCount))
		args = append(args, *filters.BudgetType)
		argCount++
	}
	if filters.IsUrgent != nil && *filters.IsUrgent {
		queryBuilder.WriteString(" AND is_urgent = TRUE")
	}
	if filters.Location != nil && *filters.Location != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND location ILIKE $%d", argCount))
		args = append(args, "%"+*filters.Location+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	if filters.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.Limit)
		argCount++
		if filters.Page > 1 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.Limit)
		}
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query open jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

// FindByOwner retrieves all jobs created by an employer, newest first
func (r *jobRepository) FindByOwner(ctx context.Context, ownerID int64) ([]model.Job, error) {
	sql := `SELECT ` + jobColumns + ` FROM jobs WHERE created_by = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs by owner: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := scanJob(rows, &j); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

// Update modifies an existing job. The created_by predicate enforces
// ownership at the SQL level as well.
func (r *jobRepository) Update(ctx context.Context, job *model.Job) error {
	sql := `UPDATE jobs
            SET title = $1, description = $2, category = $3, budget = $4, budget_type = $5,
                location = $6, contact_phone = $7, is_urgent = $8, status = $9, updated_at = NOW()
            WHERE id = $10 AND created_by = $11 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		job.Title, job.Description, job.Category, job.Budget, job.BudgetType,
		job.Location, job.ContactPhone, job.IsUrgent, job.Status, job.ID, job.CreatedBy,
	).Scan(&job.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("job not found or not owned by user for update")
		}
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// Delete removes a job from the database
func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM jobs WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job not found for deletion")
	}
	return nil
}
