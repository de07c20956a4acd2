package usecase

import (
	"context"
	"strings"
	"time"

	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
	"masar-backend/pkg/logger"
)

type onboardingUsecase struct {
	profileRepo  domain.ProfileRepository
	attemptStore domain.AssessmentAttemptStore
	extractor    domain.CVExtractor
	assessor     domain.AssessmentService
}

func NewOnboardingUsecase(
	profileRepo domain.ProfileRepository,
	attemptStore domain.AssessmentAttemptStore,
	extractor domain.CVExtractor,
	assessor domain.AssessmentService,
) domain.OnboardingUsecase {
	return &onboardingUsecase{
		profileRepo:  profileRepo,
		attemptStore: attemptStore,
		extractor:    extractor,
		assessor:     assessor,
	}
}

func (u *onboardingUsecase) GetState(ctx context.Context, userID string) (*domain.OnboardingState, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// First visit: materialize an empty shell so later partial updates
		// always merge into an existing row.
		profile, err = u.profileRepo.Upsert(ctx, &domain.ProfileUpdate{ID: userID})
		if err != nil {
			return nil, err
		}
	}

	return u.buildState(ctx, userID, profile)
}

func (u *onboardingUsecase) Advance(ctx context.Context, userID string, upd *domain.ProfileUpdate) (*domain.OnboardingState, error) {
	if upd == nil {
		upd = &domain.ProfileUpdate{}
	}
	// The authenticated subject owns the row, whatever the payload says.
	upd.ID = userID
	upd.Certification = nil
	upd.HolisticAnalysis = nil

	profile, err := u.profileRepo.Upsert(ctx, upd)
	if err != nil {
		return nil, err
	}
	return u.buildState(ctx, userID, profile)
}

// buildState derives the resume stage and, when that stage is the
// assessment, guarantees a question set exists before the state is returned.
// The client never sees the assessment stage without questions.
func (u *onboardingUsecase) buildState(ctx context.Context, userID string, profile *domain.Profile) (*domain.OnboardingState, error) {
	state := &domain.OnboardingState{
		Profile: profile,
		Stage:   domain.ResumeStage(profile),
	}

	if state.Stage == domain.StageAssessment {
		questions, err := u.ensureAttempt(ctx, userID, profile)
		if err != nil {
			return nil, err
		}
		state.Questions = questions
	}
	return state, nil
}

// ensureAttempt returns the stored question set, generating and storing a
// fresh one when no attempt is active.
func (u *onboardingUsecase) ensureAttempt(ctx context.Context, userID string, profile *domain.Profile) ([]domain.AssessmentQuestion, error) {
	attempt, err := u.attemptStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if attempt != nil {
		return attempt.Questions, nil
	}

	questions, err := u.assessor.Generate(ctx, profile)
	if err != nil {
		return nil, err
	}

	attempt = &domain.AssessmentAttempt{Questions: questions, CreatedAt: time.Now()}
	if err := u.attemptStore.Save(ctx, userID, attempt); err != nil {
		return nil, err
	}
	logger.Log.Info("assessment generated", "user_id", userID, "questions", len(questions))
	return questions, nil
}

func (u *onboardingUsecase) ParseCVText(ctx context.Context, userID, cvText string) (*domain.CVExtraction, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, apperror.BadRequest("CV text is required")
	}

	extraction, err := u.extractor.ParseText(ctx, cvText)
	if err != nil {
		logger.Log.Error("cv text parse failed", "user_id", userID, "error", err)
		return nil, apperror.New(502, "Could not extract profile data from the CV", err)
	}
	return extraction, nil
}

func (u *onboardingUsecase) ParseCVDocument(ctx context.Context, userID string, data []byte, mimeType string) (*domain.CVExtraction, error) {
	if len(data) == 0 {
		return nil, apperror.BadRequest("CV document is required")
	}

	extraction, err := u.extractor.ParseDocument(ctx, data, mimeType)
	if err != nil {
		logger.Log.Error("cv document parse failed", "user_id", userID, "error", err)
		return nil, apperror.New(502, "Could not extract profile data from the CV", err)
	}
	return extraction, nil
}

func (u *onboardingUsecase) SubmitAssessment(ctx context.Context, userID string, answers []domain.UserAnswer) (*domain.AssessmentSubmission, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil || domain.ResumeStage(profile) != domain.StageAssessment {
		return nil, apperror.Conflict("No assessment is in progress for this profile")
	}

	attempt, err := u.attemptStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, apperror.Conflict("No active assessment attempt. Reload the onboarding state to start one.")
	}

	// Answers are keyed by question text; every stored question must be
	// answered, and answers to unknown questions are rejected.
	answered := make(map[string]bool, len(answers))
	known := make(map[string]bool, len(attempt.Questions))
	for _, q := range attempt.Questions {
		known[q.Question] = true
	}
	for _, a := range answers {
		if !known[a.Question] {
			return nil, apperror.BadRequest("Answer refers to an unknown question")
		}
		answered[a.Question] = true
	}
	if len(answered) != len(attempt.Questions) {
		return nil, apperror.BadRequest("All assessment questions must be answered")
	}

	result, err := u.assessor.Evaluate(ctx, attempt.Questions, answers)
	if err != nil {
		logger.Log.Error("assessment evaluation failed", "user_id", userID, "error", err)
		return nil, apperror.New(502, "Could not evaluate the assessment", err)
	}

	// Score and certified flag persist together or not at all.
	updated, err := u.profileRepo.Upsert(ctx, &domain.ProfileUpdate{
		ID:            userID,
		Certification: &domain.Certification{Score: result.Score, Certified: result.Passed},
	})
	if err != nil {
		return nil, err
	}

	if err := u.attemptStore.Clear(ctx, userID); err != nil {
		// A stale attempt only means a retry sees old questions; not fatal.
		logger.Log.Warn("failed to clear assessment attempt", "user_id", userID, "error", err)
	}

	logger.Log.Info("assessment evaluated",
		"user_id", userID, "score", result.Score, "passed", result.Passed)

	// Every completed evaluation lands on the result stage, pass or fail.
	// A failed candidate re-enters the assessment on the next state fetch,
	// where a fresh question set is generated.
	return &domain.AssessmentSubmission{
		Score:   result.Score,
		Passed:  result.Passed,
		Stage:   domain.StageResult,
		Profile: updated,
	}, nil
}
