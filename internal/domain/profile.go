package domain

import (
	"context"
	"time"
)

// Profile is the single row per authenticated user. Candidates and
// recruiters share the same table; the role lives on the users table and
// decides which subset of fields is meaningful.
type Profile struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	ExperienceYears *int     `json:"experience_years"`
	Skills          []string `json:"skills"`
	PhotoURL        *string  `json:"photo_url"`
	JobGoal         *string  `json:"job_goal"`
	CredlyURL       *string  `json:"credly_url"`

	// Set together, only by the assessment evaluator.
	IsCertified     *bool `json:"is_certified"`
	AssessmentScore *int  `json:"assessment_score"`

	HolisticAnalysis *HolisticAnalysis `json:"holistic_analysis,omitempty"`

	// Recruiter/company fields
	CompanyName        *string `json:"company_name,omitempty"`
	CompanyWebsite     *string `json:"company_website,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`
	CompanyLogoURL     *string `json:"company_logo_url,omitempty"`
	CompanySize        *string `json:"company_size,omitempty"`
	Industry           *string `json:"industry,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// HolisticAnalysis is the AI-generated scored narrative attached to a
// candidate profile. Regeneration overwrites the previous one.
type HolisticAnalysis struct {
	CompletenessScore int      `json:"completeness_score"`
	ConsistencyScore  int      `json:"consistency_score"`
	GoalClarityScore  int      `json:"goal_clarity_score"`
	RecruiterSummary  string   `json:"recruiter_summary"`
	KeyStrengths      []string `json:"key_strengths"`
}

// Certification carries the evaluator outcome. Score and certified flag are
// a single value so a partial update can never persist one without the other.
type Certification struct {
	Score     int  `json:"score"`
	Certified bool `json:"certified"`
}

// ProfileUpdate is a typed partial update. A nil field is left untouched by
// the upsert; a non-nil field overwrites the stored value. This is the
// merge-not-replace contract every onboarding stage relies on.
type ProfileUpdate struct {
	ID              string    `json:"id" validate:"required"`
	FullName        *string   `json:"full_name,omitempty"`
	Title           *string   `json:"title,omitempty"`
	Summary         *string   `json:"summary,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	Skills          *[]string `json:"skills,omitempty"`
	PhotoURL        *string   `json:"photo_url,omitempty" validate:"omitempty,url"`
	JobGoal         *string   `json:"job_goal,omitempty"`
	CredlyURL       *string   `json:"credly_url,omitempty" validate:"omitempty,url"`

	Certification    *Certification    `json:"-"`
	HolisticAnalysis *HolisticAnalysis `json:"-"`

	CompanyName        *string `json:"company_name,omitempty"`
	CompanyWebsite     *string `json:"company_website,omitempty" validate:"omitempty,url"`
	CompanyDescription *string `json:"company_description,omitempty"`
	CompanyLogoURL     *string `json:"company_logo_url,omitempty" validate:"omitempty,url"`
	CompanySize        *string `json:"company_size,omitempty"`
	Industry           *string `json:"industry,omitempty"`
}

// ApplyTo merges the update into an in-memory snapshot using the same
// semantics the repository applies on upsert. Keeping it here lets the
// onboarding usecase hand back a fresh snapshot without re-reading.
func (u *ProfileUpdate) ApplyTo(p *Profile) {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Summary != nil {
		p.Summary = *u.Summary
	}
	if u.ExperienceYears != nil {
		p.ExperienceYears = u.ExperienceYears
	}
	if u.Skills != nil {
		p.Skills = *u.Skills
	}
	if u.PhotoURL != nil {
		p.PhotoURL = u.PhotoURL
	}
	if u.JobGoal != nil {
		p.JobGoal = u.JobGoal
	}
	if u.CredlyURL != nil {
		p.CredlyURL = u.CredlyURL
	}
	if u.Certification != nil {
		score := u.Certification.Score
		certified := u.Certification.Certified
		p.AssessmentScore = &score
		p.IsCertified = &certified
	}
	if u.HolisticAnalysis != nil {
		p.HolisticAnalysis = u.HolisticAnalysis
	}
	if u.CompanyName != nil {
		p.CompanyName = u.CompanyName
	}
	if u.CompanyWebsite != nil {
		p.CompanyWebsite = u.CompanyWebsite
	}
	if u.CompanyDescription != nil {
		p.CompanyDescription = u.CompanyDescription
	}
	if u.CompanyLogoURL != nil {
		p.CompanyLogoURL = u.CompanyLogoURL
	}
	if u.CompanySize != nil {
		p.CompanySize = u.CompanySize
	}
	if u.Industry != nil {
		p.Industry = u.Industry
	}
}

type ProfileRepository interface {
	// GetByID returns (nil, nil) when no row exists.
	GetByID(ctx context.Context, id string) (*Profile, error)
	// Upsert merges the partial update into the stored row (inserting a new
	// row when absent) and returns the full updated profile. Only non-nil
	// fields change; the server stamps updated_at.
	Upsert(ctx context.Context, upd *ProfileUpdate) (*Profile, error)
	// ListCertified returns marketplace-visible candidates, newest first.
	ListCertified(ctx context.Context) ([]Profile, error)
}

type ProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateMyProfile(ctx context.Context, userID string, upd *ProfileUpdate) (*Profile, error)
	UpdateCompany(ctx context.Context, userID string, upd *ProfileUpdate) (*Profile, error)
	ListCertifiedCandidates(ctx context.Context) ([]Profile, error)
	GenerateAnalysis(ctx context.Context, userID string) (*HolisticAnalysis, error)
}
