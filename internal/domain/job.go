package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// JobPosting is a job published by a recruiter's company profile.
type JobPosting struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Title          string    `json:"title" validate:"required,min=3,max=120"`
	Description    string    `json:"description" validate:"required"`
	Location       string    `json:"location"`
	RequiredSkills []string  `json:"required_skills"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// JobPostingWithCompany joins the posting with the owning company profile
// fields the marketplace listing shows.
type JobPostingWithCompany struct {
	JobPosting
	CompanyName    *string `json:"company_name"`
	CompanyLogoURL *string `json:"company_logo_url"`
	Industry       *string `json:"industry"`
}

// MatchedJob is a job associated with a candidate by an external matching
// process. Read-only in this service.
type MatchedJob struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Location   *string    `json:"location,omitempty"`
	URL        string     `json:"url"`
	Logo       *string    `json:"logo,omitempty"`
	InsertedAt *time.Time `json:"inserted_at,omitempty"`
}

type JobRepository interface {
	Create(ctx context.Context, job *JobPosting) error
	GetByID(ctx context.Context, id string) (*JobPosting, error)
	ListActiveWithCompany(ctx context.Context) ([]JobPostingWithCompany, error)
	ListByCompany(ctx context.Context, companyID string) ([]JobPosting, error)
	Update(ctx context.Context, job *JobPosting) error
	Delete(ctx context.Context, id string) error

	ListMatchedForUser(ctx context.Context, userID string) ([]MatchedJob, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *JobPosting) (*JobPosting, error)
	ListPublicJobs(ctx context.Context) ([]JobPostingWithCompany, error)
	ListMyJobs(ctx context.Context, userID string) ([]JobPosting, error)
	UpdateJob(ctx context.Context, userID string, job *JobPosting) (*JobPosting, error)
	DeleteJob(ctx context.Context, userID, jobID string) error
	ListMatchingJobs(ctx context.Context, userID string) ([]MatchedJob, error)
}
