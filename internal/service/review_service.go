package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudagama/job-portal/internal/model"
	"github.com/kudagama/job-portal/internal/repository"
)

var (
	ErrRevieweeNotFound = errors.New("user to review not found")
	ErrReviewNotAllowed = errors.New("review is only allowed after the engagement is finished")
	ErrDuplicateReview  = errors.New("you have already reviewed this user for this job")
)

// ReviewService defines operations for reviews
type ReviewService interface {
	CreateReview(ctx context.Context, reviewerID int64, req model.CreateReviewRequest) (*model.Review, error)
	GetReviewsForUser(ctx context.Context, userID int64) ([]model.UserReview, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	appRepo    repository.ApplicationRepository
	userRepo   repository.UserRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, appRepo repository.ApplicationRepository, userRepo repository.UserRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, appRepo: appRepo, userRepo: userRepo}
}

// CreateReview stores feedback for a candidate, gated on the candidate's
// application on that job having reached Finished.
func (s *reviewService) CreateReview(ctx context.Context, reviewerID int64, req model.CreateReviewRequest) (*model.Review, error) {
	reviewee, err := s.userRepo.FindByID(ctx, req.RevieweeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviewee: %w", err)
	}
	if reviewee == nil {
		return nil, ErrRevieweeNotFound
	}

	app, err := s.appRepo.FindByJobAndApplicant(ctx, req.JobID, req.RevieweeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application for review gating: %w", err)
	}
	if app == nil || app.Status != model.ApplicationStatusFinished {
		return nil, ErrReviewNotAllowed
	}

	existing, err := s.reviewRepo.FindByTriple(ctx, reviewerID, req.RevieweeID, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	review := &model.Review{
		ReviewerID: reviewerID,
		RevieweeID: req.RevieweeID,
		JobID:      req.JobID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review in repo: %w", err)
	}
	return review, nil
}

// GetReviewsForUser returns reviews received by a user, newest first
func (s *reviewService) GetReviewsForUser(ctx context.Context, userID int64) ([]model.UserReview, error) {
	reviews, err := s.reviewRepo.FindByReviewee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews from repo: %w", err)
	}
	return reviews, nil
}
