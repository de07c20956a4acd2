package domain

import (
	"context"
	"time"
)

// ============================================================================
// Career passport entities
// ============================================================================

type Certificate struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Name                string    `json:"name" validate:"required"`
	IssuingOrganization string    `json:"issuing_organization" validate:"required"`
	IssueDate           *string   `json:"issue_date,omitempty"` // YYYY-MM-DD
	Description         *string   `json:"description,omitempty"`
	FileURL             *string   `json:"file_url,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type Project struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title" validate:"required"`
	Description  *string   `json:"description,omitempty"`
	Technologies []string  `json:"technologies"`
	ProjectURL   *string   `json:"project_url,omitempty" validate:"omitempty,url"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type SocialPlatform string

const (
	PlatformGitHub      SocialPlatform = "github"
	PlatformLinkedIn    SocialPlatform = "linkedin"
	PlatformBehance     SocialPlatform = "behance"
	PlatformHuggingFace SocialPlatform = "huggingface"
	PlatformPortfolio   SocialPlatform = "portfolio"
	PlatformOther       SocialPlatform = "other"
)

func (p SocialPlatform) IsValid() bool {
	switch p {
	case PlatformGitHub, PlatformLinkedIn, PlatformBehance, PlatformHuggingFace, PlatformPortfolio, PlatformOther:
		return true
	}
	return false
}

type SocialLink struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Platform  SocialPlatform `json:"platform" validate:"required"`
	URL       string         `json:"url" validate:"required,url"`
	CreatedAt time.Time      `json:"created_at"`
}

// Passport aggregates everything a recruiter sees about a candidate.
type Passport struct {
	Profile      *Profile      `json:"profile"`
	Certificates []Certificate `json:"certificates"`
	Projects     []Project     `json:"projects"`
	SocialLinks  []SocialLink  `json:"social_links"`
}

// ============================================================================
// Repository / usecase interfaces
// ============================================================================

type PassportRepository interface {
	ListCertificates(ctx context.Context, userID string) ([]Certificate, error)
	AddCertificate(ctx context.Context, cert *Certificate) error
	DeleteCertificate(ctx context.Context, userID, certID string) error

	ListProjects(ctx context.Context, userID string) ([]Project, error)
	AddProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, userID, projectID string) error

	ListSocialLinks(ctx context.Context, userID string) ([]SocialLink, error)
	// UpsertSocialLink inserts or replaces the link for (user_id, platform).
	UpsertSocialLink(ctx context.Context, link *SocialLink) (*SocialLink, error)
	DeleteSocialLink(ctx context.Context, userID, linkID string) error
}

type PassportUsecase interface {
	GetPassport(ctx context.Context, userID string) (*Passport, error)
	// GetPublicPassport is the recruiter view; it requires the candidate to
	// be certified.
	GetPublicPassport(ctx context.Context, candidateID string) (*Passport, error)

	AddCertificate(ctx context.Context, userID string, cert *Certificate) (*Certificate, error)
	DeleteCertificate(ctx context.Context, userID, certID string) error
	AddProject(ctx context.Context, userID string, project *Project) (*Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
	UpsertSocialLink(ctx context.Context, userID string, platform SocialPlatform, url string) (*SocialLink, error)
	DeleteSocialLink(ctx context.Context, userID, linkID string) error
}
