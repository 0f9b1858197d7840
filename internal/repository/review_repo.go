package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudagama/job-portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// ReviewRepository defines operations for review data
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByTriple(ctx context.Context, reviewerID, revieweeID, jobID int64) (*model.Review, error)
	FindByReviewee(ctx context.Context, revieweeID int64) ([]model.UserReview, error)
}

type reviewRepository struct {
	db DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review. The (reviewer, reviewee, job) unique
// constraint backs the one-review-per-engagement invariant.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	sql := `INSERT INTO reviews (reviewer_id, reviewee_id, job_id, rating, comment)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, review.ReviewerID, review.RevieweeID, review.JobID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// FindByTriple retrieves the review a reviewer left for a reviewee on a job, if any
func (r *reviewRepository) FindByTriple(ctx context.Context, reviewerID, revieweeID, jobID int64) (*model.Review, error) {
	rev := &model.Review{}
	sql := `SELECT id, reviewer_id, reviewee_id, job_id, rating, comment, created_at
            FROM reviews WHERE reviewer_id = $1 AND reviewee_id = $2 AND job_id = $3`
	err := r.db.QueryRow(ctx, sql, reviewerID, revieweeID, jobID).
		Scan(&rev.ID, &rev.ReviewerID, &rev.RevieweeID, &rev.JobID, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return rev, nil
}

// FindByReviewee retrieves reviews for a user with reviewer and job details
// joined in, newest first
func (r *reviewRepository) FindByReviewee(ctx context.Context, revieweeID int64) ([]model.UserReview, error) {
	sql := `SELECT r.id, r.reviewer_id, r.reviewee_id, r.job_id, r.rating, r.comment, r.created_at,
                   u.name, u.profile_picture, j.title
            FROM reviews r
            JOIN users u ON u.id = r.reviewer_id
            JOIN jobs j ON j.id = r.job_id
            WHERE r.reviewee_id = $1
            ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.Query(ctx, sql, revieweeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews by reviewee: %w", err)
	}
	defer rows.Close()

	var reviews []model.UserReview
	for rows.Next() {
		var rev model.UserReview
		if err := rows.Scan(
			&rev.ID, &rev.ReviewerID, &rev.RevieweeID, &rev.JobID, &rev.Rating, &rev.Comment, &rev.CreatedAt,
			&rev.ReviewerName, &rev.ReviewerPicture, &rev.JobTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}
