package model

import "time"

const (
	JobStatusOpen   = "Open"
	JobStatusClosed = "Closed"
)

const (
	BudgetTypeFixed = "Fixed"
	BudgetTypeDaily = "Daily"
)

// JobCategories is the fixed set of service categories a job may belong to.
var JobCategories = []string{
	"Construction", "Cleaning", "Electrical", "Plumbing",
	"Transport", "Masonry", "Gardening", "Other",
}

// ValidJobCategory reports whether c is one of the known categories.
func ValidJobCategory(c string) bool {
	for _, known := range JobCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Job is a service request posted by an employer
type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Budget       float64   `json:"budget"`
	BudgetType   string    `json:"budgetType"` // "Fixed" or "Daily"
	Location     string    `json:"location"`
	ContactPhone string    `json:"contactPhone"`
	IsUrgent     bool      `json:"isUrgent"`
	Status       string    `json:"status"` // "Open" or "Closed"
	CreatedBy    int64     `json:"createdBy"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateJobRequest is used for posting a new job
type CreateJobRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Category     string  `json:"category" binding:"omitempty,oneof=Construction Cleaning Electrical Plumbing Transport Masonry Gardening Other"`
	Budget       float64 `json:"budget" binding:"required,gt=0"`
	BudgetType   string  `json:"budgetType" binding:"omitempty,oneof=Fixed Daily"`
	Location     string  `json:"location"`
	ContactPhone string  `json:"contactPhone"`
	IsUrgent     bool    `json:"isUrgent"`
}

// UpdateJobRequest allows partial updates by the owning employer
type UpdateJobRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty" binding:"omitempty,oneof=Construction Cleaning Electrical Plumbing Transport Masonry Gardening Other"`
	Budget       *float64 `json:"budget,omitempty" binding:"omitempty,gt=0"`
	BudgetType   *string  `json:"budgetType,omitempty" binding:"omitempty,oneof=Fixed Daily"`
	Location     *string  `json:"location,omitempty"`
	ContactPhone *string  `json:"contactPhone,omitempty"`
	IsUrgent     *bool    `json:"isUrgent,omitempty"`
	Status       *string  `json:"status,omitempty" binding:"omitempty,oneof=Open Closed"`
}

// JobFilters contains filter parameters for the public job listing
type JobFilters struct {
	Keyword    *string
	Category   *string
	BudgetType *string
	IsUrgent   *bool
	Location   *string
	Page       int
	Limit      int
}

// JobWithDetailedStatus is the dashboard view of an employer's job. The
// detailed status is derived at read time and never persisted.
type JobWithDetailedStatus struct {
	Job
	DetailedStatus string `json:"detailedStatus"`
}
