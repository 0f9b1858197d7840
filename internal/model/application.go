package model

import "time"

const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusAccepted = "Accepted"
	ApplicationStatusRejected = "Rejected"
	ApplicationStatusFinished = "Finished"
)

// Application is a candidate's bid on a job
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	ApplicantID int64     `json:"applicantId"`
	CoverLetter string    `json:"coverLetter"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
}

// ApplyRequest is used by a candidate to apply for a job
type ApplyRequest struct {
	JobID       int64  `json:"jobId" binding:"required"`
	CoverLetter string `json:"coverLetter" binding:"required"`
}

// UpdateApplicationStatusRequest carries the requested status transition
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Accepted Rejected Finished"`
}

// JobSummary is the job slice embedded in a candidate's application list
type JobSummary struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Location      string  `json:"location"`
	Budget        float64 `json:"budget"`
	BudgetType    string  `json:"budgetType"`
	Status        string  `json:"status"`
	ContactPhone  string  `json:"contactPhone"`
	EmployerName  string  `json:"employerName"`
	EmployerEmail string  `json:"employerEmail"`
}

// MyApplication is an application with its job summary populated
type MyApplication struct {
	Application
	Job JobSummary `json:"job"`
}

// ApplicantProfile is the applicant slice embedded in an employer's view
type ApplicantProfile struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// JobApplication is an application with its applicant profile populated
type JobApplication struct {
	Application
	Applicant ApplicantProfile `json:"applicant"`
}
