package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ============================================================================
// Onboarding stages
// ============================================================================

// OnboardingStage is one of the five ordered steps a candidate walks through
// before certification. It is never stored: it is always derived from the
// profile snapshot so stage and data cannot disagree.
type OnboardingStage string

const (
	StageProfileData OnboardingStage = "profile_data"
	StagePhoto       OnboardingStage = "photo"
	StageGoal        OnboardingStage = "goal"
	StageAssessment  OnboardingStage = "assessment"
	StageResult      OnboardingStage = "result"
)

// ResumeStage derives the stage to resume at from a profile snapshot.
// Precedence is fixed: core identity fields, then photo, then goal, then
// certification. Pure function of the snapshot.
func ResumeStage(p *Profile) OnboardingStage {
	switch {
	case p == nil, p.FullName == "", p.Title == "", len(p.Skills) == 0:
		return StageProfileData
	case p.PhotoURL == nil || *p.PhotoURL == "":
		return StagePhoto
	case p.JobGoal == nil || *p.JobGoal == "":
		return StageGoal
	case p.IsCertified == nil || !*p.IsCertified:
		return StageAssessment
	default:
		return StageResult
	}
}

// ============================================================================
// Assessment
// ============================================================================

// PassThreshold is the minimum evaluator score for certification.
const PassThreshold = 70

// Fixed shape of a generated question set.
const (
	AssessmentQuestionCount = 5
	AssessmentChoiceCount   = 3
	AssessmentTextCount     = 2
	AssessmentOptionCount   = 4
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionText           QuestionType = "text"
)

// AssessmentQuestion is ephemeral: generated per onboarding attempt and kept
// only in the attempt store, never persisted verbatim.
type AssessmentQuestion struct {
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
}

// UserAnswer is keyed by question text for the lifetime of one attempt.
type UserAnswer struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

// ErrQuestionSetShape marks a generated set that violates the fixed contract.
var ErrQuestionSetShape = errors.New("question set does not match the required shape")

// ValidateQuestionSet enforces the generator contract: exactly 5 questions,
// 3 multiple_choice each with exactly 4 options, 2 text with none.
func ValidateQuestionSet(questions []AssessmentQuestion) error {
	if len(questions) != AssessmentQuestionCount {
		return fmt.Errorf("%w: got %d questions, want %d", ErrQuestionSetShape, len(questions), AssessmentQuestionCount)
	}
	var choice, text int
	for i, q := range questions {
		if q.Question == "" {
			return fmt.Errorf("%w: question %d is empty", ErrQuestionSetShape, i+1)
		}
		switch q.Type {
		case QuestionMultipleChoice:
			choice++
			if len(q.Options) != AssessmentOptionCount {
				return fmt.Errorf("%w: question %d has %d options, want %d", ErrQuestionSetShape, i+1, len(q.Options), AssessmentOptionCount)
			}
		case QuestionText:
			text++
			if len(q.Options) != 0 {
				return fmt.Errorf("%w: text question %d must not have options", ErrQuestionSetShape, i+1)
			}
		default:
			return fmt.Errorf("%w: question %d has unknown type %q", ErrQuestionSetShape, i+1, q.Type)
		}
	}
	if choice != AssessmentChoiceCount || text != AssessmentTextCount {
		return fmt.Errorf("%w: got %d multiple_choice and %d text, want %d and %d",
			ErrQuestionSetShape, choice, text, AssessmentChoiceCount, AssessmentTextCount)
	}
	return nil
}

// AssessmentAttempt holds the transient state of one onboarding attempt.
// Losing it before submission just restarts the assessment stage.
type AssessmentAttempt struct {
	Questions []AssessmentQuestion `json:"questions"`
	CreatedAt time.Time            `json:"created_at"`
}

// AssessmentResult is the evaluator outcome for one submission.
type AssessmentResult struct {
	Score  int  `json:"score"`
	Passed bool `json:"passed"`
}

// ============================================================================
// Data transfer objects
// ============================================================================

// OnboardingState is what the client renders: the profile snapshot, the
// derived stage, and the question set when the stage is assessment.
type OnboardingState struct {
	Profile   *Profile             `json:"profile"`
	Stage     OnboardingStage      `json:"stage"`
	Questions []AssessmentQuestion `json:"questions,omitempty"`
}

// AssessmentSubmission is the outcome returned after a completed evaluation.
// Stage is always StageResult; a failed candidate sees the result screen and
// re-enters the assessment on the next state fetch.
type AssessmentSubmission struct {
	Score   int             `json:"score"`
	Passed  bool            `json:"passed"`
	Stage   OnboardingStage `json:"stage"`
	Profile *Profile        `json:"profile"`
}

// CVExtraction is the schema-constrained result of parsing a CV. It is
// accepted whole or not at all; a failed parse never merges partial data.
type CVExtraction struct {
	FullName        string   `json:"full_name" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Summary         string   `json:"summary"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Skills          []string `json:"skills" validate:"required,min=1"`
}

// ToUpdate converts the extraction into a partial profile update carrying
// only the fields the parser actually produced.
func (e *CVExtraction) ToUpdate(userID string) *ProfileUpdate {
	upd := &ProfileUpdate{ID: userID}
	if e.FullName != "" {
		upd.FullName = &e.FullName
	}
	if e.Title != "" {
		upd.Title = &e.Title
	}
	if e.Summary != "" {
		upd.Summary = &e.Summary
	}
	if e.ExperienceYears != nil {
		upd.ExperienceYears = e.ExperienceYears
	}
	if len(e.Skills) > 0 {
		skills := e.Skills
		upd.Skills = &skills
	}
	return upd
}

// ============================================================================
// Collaborator interfaces
// ============================================================================

// AssessmentAttemptStore keeps the ephemeral question set for the current
// onboarding attempt so it is reused rather than regenerated on every load.
type AssessmentAttemptStore interface {
	// Get returns (nil, nil) when no attempt exists.
	Get(ctx context.Context, userID string) (*AssessmentAttempt, error)
	Save(ctx context.Context, userID string, attempt *AssessmentAttempt) error
	Clear(ctx context.Context, userID string) error
}

type OnboardingUsecase interface {
	// GetState fetches the profile (creating an empty shell for new users),
	// derives the resume stage, and ensures a question set exists when that
	// stage is assessment.
	GetState(ctx context.Context, userID string) (*OnboardingState, error)
	// Advance persists the partial profile, recomputes the stage, and
	// generates the assessment before entering that stage. Any failure
	// leaves stored state unchanged for a user-initiated retry.
	Advance(ctx context.Context, userID string, upd *ProfileUpdate) (*OnboardingState, error)
	ParseCVText(ctx context.Context, userID, cvText string) (*CVExtraction, error)
	ParseCVDocument(ctx context.Context, userID string, data []byte, mimeType string) (*CVExtraction, error)
	SubmitAssessment(ctx context.Context, userID string, answers []UserAnswer) (*AssessmentSubmission, error)
}
