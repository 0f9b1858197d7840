package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudagama/job-portal/internal/model"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrJobNotOpen is returned when a transition requires the job to still
	// be open and a concurrent write already closed it.
	ErrJobNotOpen = errors.New("job is not open")
	// ErrStatusConflict is returned when the application's stored status no
	// longer matches the expected source status of a transition.
	ErrStatusConflict = errors.New("application status changed concurrently")
)

// ApplicationRepository defines operations for application data
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id int64) (*model.Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID int64) (*model.Application, error)
	FindByApplicant(ctx context.Context, applicantID int64) ([]model.MyApplication, error)
	FindByJob(ctx context.Context, jobID int64) ([]model.JobApplication, error)
	FindActiveByJobIDs(ctx context.Context, jobIDs []int64) ([]model.Application, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to string) error
	Accept(ctx context.Context, appID, jobID int64) error
}

type applicationRepository struct {
	db DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts a new application. The (job_id, applicant_id) unique
// constraint backs the one-application-per-candidate invariant.
func (r *applicationRepository) Create(ctx context.Context, app *model.Application) error {
	sql := `INSERT INTO applications (job_id, applicant_id, cover_letter, status)
            VALUES ($1, $2, $3, $4) RETURNING id, applied_at`
	err := r.db.QueryRow(ctx, sql, app.JobID, app.ApplicantID, app.CoverLetter, app.Status).
		Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByID retrieves an application by its ID
func (r *applicationRepository) FindByID(ctx context.Context, id int64) (*model.Application, error) {
	a := &model.Application{}
	sql := `SELECT id, job_id, applicant_id, cover_letter, status, applied_at FROM applications WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.Status, &a.AppliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find application by ID: %w", err)
	}
	return a, nil
}

// FindByJobAndApplicant retrieves the application a candidate made on a job, if any
func (r *applicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID int64) (*model.Application, error) {
	a := &model.Application{}
	sql := `SELECT id, job_id, applicant_id, cover_letter, status, applied_at
            FROM applications WHERE job_id = $1 AND applicant_id = $2`
	err := r.db.QueryRow(ctx, sql, jobID, applicantID).Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.Status, &a.AppliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find application by job and applicant: %w", err)
	}
	return a, nil
}

// FindByApplicant retrieves a candidate's applications with the job summary
// joined in, newest first
func (r *applicationRepository) FindByApplicant(ctx context.Context, applicantID int64) ([]model.MyApplication, error) {
	sql := `SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.status, a.applied_at,
                   j.id, j.title, j.location, j.budget, j.budget_type, j.status, j.contact_phone,
                   u.name, u.email
            FROM applications a
            JOIN jobs j ON j.id = a.job_id
            JOIN users u ON u.id = j.created_by
            WHERE a.applicant_id = $1
            ORDER BY a.applied_at DESC, a.id DESC`
	rows, err := r.db.Query(ctx, sql, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications by applicant: %w", err)
	}
	defer rows.Close()

	var apps []model.MyApplication
	for rows.Next() {
		var a model.MyApplication
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.Status, &a.AppliedAt,
			&a.Job.ID, &a.Job.Title, &a.Job.Location, &a.Job.Budget, &a.Job.BudgetType,
			&a.Job.Status, &a.Job.ContactPhone, &a.Job.EmployerName, &a.Job.EmployerEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// FindByJob retrieves all applications on a job with the applicant profile
// joined in, newest first
func (r *applicationRepository) FindByJob(ctx context.Context, jobID int64) ([]model.JobApplication, error) {
	sql := `SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.status, a.applied_at,
                   u.id, u.name, u.email, u.phone, u.profile_picture
            FROM applications a
            JOIN users u ON u.id = a.applicant_id
            WHERE a.job_id = $1
            ORDER BY a.applied_at DESC, a.id DESC`
	rows, err := r.db.Query(ctx, sql, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications by job: %w", err)
	}
	defer rows.Close()

	var apps []model.JobApplication
	for rows.Next() {
		var a model.JobApplication
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.Status, &a.AppliedAt,
			&a.Applicant.ID, &a.Applicant.Name, &a.Applicant.Email, &a.Applicant.Phone, &a.Applicant.ProfilePicture,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// FindActiveByJobIDs retrieves Accepted/Finished applications for a set of
// jobs, used by the dashboard status projection
func (r *applicationRepository) FindActiveByJobIDs(ctx context.Context, jobIDs []int64) ([]model.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	sql := `SELECT id, job_id, applicant_id, cover_letter, status, applied_at
            FROM applications
            WHERE job_id = ANY($1) AND status IN ('Accepted', 'Finished')
            ORDER BY applied_at ASC, id ASC`
	rows, err := r.db.Query(ctx, sql, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query active applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.Status, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// UpdateStatusIf moves an application from one status to another. The
// conditional predicate makes the transition safe against concurrent
// writers: zero rows affected means the stored status was no longer `from`.
func (r *applicationRepository) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	sql := `UPDATE applications SET status = $1 WHERE id = $2 AND status = $3`
	cmdTag, err := r.db.Exec(ctx, sql, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Accept marks an application Accepted and closes its job in a single
// transaction. The job-close update is conditional on the job still being
// Open, so two concurrent accepts on the same job cannot both succeed.
func (r *applicationRepository) Accept(ctx context.Context, appID, jobID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin accept transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `UPDATE jobs SET status = 'Closed', updated_at = NOW() WHERE id = $1 AND status = 'Open'`, jobID)
	if err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrJobNotOpen
	}

	cmdTag, err = tx.Exec(ctx, `UPDATE applications SET status = 'Accepted' WHERE id = $1 AND status = 'Pending'`, appID)
	if err != nil {
		return fmt.Errorf("failed to accept application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStatusConflict
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit accept transaction: %w", err)
	}
	return nil
}
