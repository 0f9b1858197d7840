package model

import "time"

// Review is post-completion feedback from an employer to a candidate
type Review struct {
	ID         int64     `json:"id"`
	ReviewerID int64     `json:"reviewerId"`
	RevieweeID int64     `json:"revieweeId"`
	JobID      int64     `json:"jobId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateReviewRequest is used for submitting a review
type CreateReviewRequest struct {
	RevieweeID int64  `json:"revieweeId" binding:"required"`
	JobID      int64  `json:"jobId" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// UserReview is a review with reviewer and job details populated for display
type UserReview struct {
	Review
	ReviewerName    string  `json:"reviewerName"`
	ReviewerPicture *string `json:"reviewerPicture,omitempty"`
	JobTitle        string  `json:"jobTitle"`
}
