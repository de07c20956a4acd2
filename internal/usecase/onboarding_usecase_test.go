package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"masar-backend/internal/domain"
	"masar-backend/internal/usecase"
)

// Mock Repositories

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Upsert(ctx context.Context, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) ListCertified(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) Get(ctx context.Context, userID string) (*domain.AssessmentAttempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentAttempt), args.Error(1)
}

func (m *MockAttemptStore) Save(ctx context.Context, userID string, attempt *domain.AssessmentAttempt) error {
	return m.Called(ctx, userID, attempt).Error(0)
}

func (m *MockAttemptStore) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ParseText(ctx context.Context, cvText string) (*domain.CVExtraction, error) {
	args := m.Called(ctx, cvText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVExtraction), args.Error(1)
}

func (m *MockExtractor) ParseDocument(ctx context.Context, data []byte, mimeType string) (*domain.CVExtraction, error) {
	args := m.Called(ctx, data, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CVExtraction), args.Error(1)
}

type MockAssessor struct {
	mock.Mock
}

func (m *MockAssessor) Generate(ctx context.Context, profile *domain.Profile) ([]domain.AssessmentQuestion, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssessmentQuestion), args.Error(1)
}

func (m *MockAssessor) Evaluate(ctx context.Context, questions []domain.AssessmentQuestion, answers []domain.UserAnswer) (*domain.AssessmentResult, error) {
	args := m.Called(ctx, questions, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssessmentResult), args.Error(1)
}

// Helpers

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func assessmentReadyProfile(userID string) *domain.Profile {
	return &domain.Profile{
		ID:       userID,
		FullName: "سارة أحمد",
		Title:    "مهندسة برمجيات",
		Skills:   []string{"Go"},
		PhotoURL: strPtr("https://cdn.example/a.jpg"),
		JobGoal:  strPtr("قيادة فريق"),
	}
}

func questionSet() []domain.AssessmentQuestion {
	return []domain.AssessmentQuestion{
		{Question: "س1", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س2", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س3", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س4", Type: domain.QuestionText},
		{Question: "س5", Type: domain.QuestionText},
	}
}

func answersFor(questions []domain.AssessmentQuestion) []domain.UserAnswer {
	answers := make([]domain.UserAnswer, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, domain.UserAnswer{Question: q.Question, Answer: "إجابة"})
	}
	return answers
}

// Tests

func TestGetState(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an empty shell on first visit", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), new(MockAssessor))

		profileRepo.On("GetByID", ctx, "user1").Return(nil, nil)
		profileRepo.On("Upsert", ctx, mock.MatchedBy(func(upd *domain.ProfileUpdate) bool {
			return upd.ID == "user1" && upd.FullName == nil
		})).Return(&domain.Profile{ID: "user1"}, nil)

		state, err := uc.GetState(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.StageProfileData, state.Stage)
		assert.Empty(t, state.Questions)
		profileRepo.AssertExpectations(t)
	})

	t.Run("reuses the stored attempt when resuming into the assessment", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		profile := assessmentReadyProfile("user1")
		qs := questionSet()
		profileRepo.On("GetByID", ctx, "user1").Return(profile, nil)
		store.On("Get", ctx, "user1").Return(&domain.AssessmentAttempt{Questions: qs, CreatedAt: time.Now()}, nil)

		state, err := uc.GetState(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.StageAssessment, state.Stage)
		assert.Equal(t, qs, state.Questions)
		assessor.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("generates a question set when entering the assessment without one", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		profile := assessmentReadyProfile("user1")
		qs := questionSet()
		profileRepo.On("GetByID", ctx, "user1").Return(profile, nil)
		store.On("Get", ctx, "user1").Return(nil, nil)
		assessor.On("Generate", ctx, profile).Return(qs, nil)
		store.On("Save", ctx, "user1", mock.MatchedBy(func(a *domain.AssessmentAttempt) bool {
			return len(a.Questions) == 5
		})).Return(nil)

		state, err := uc.GetState(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, qs, state.Questions)
		store.AssertExpectations(t)
	})
}

func TestAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("forces ownership and strips privileged fields", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), new(MockAssessor))

		var captured *domain.ProfileUpdate
		profileRepo.On("Upsert", ctx, mock.MatchedBy(func(upd *domain.ProfileUpdate) bool {
			captured = upd
			return true
		})).Return(&domain.Profile{ID: "user1", FullName: "سارة"}, nil)

		_, err := uc.Advance(ctx, "user1", &domain.ProfileUpdate{
			ID:            "victim",
			FullName:      strPtr("سارة"),
			Certification: &domain.Certification{Score: 100, Certified: true},
		})

		assert.NoError(t, err)
		assert.Equal(t, "user1", captured.ID)
		assert.Nil(t, captured.Certification, "certification must never come from the client")
		assert.Nil(t, captured.HolisticAnalysis)
	})

	t.Run("returns the recomputed stage after the merge", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		merged := assessmentReadyProfile("user1")
		merged.JobGoal = nil
		profileRepo.On("Upsert", ctx, mock.Anything).Return(merged, nil)

		state, err := uc.Advance(ctx, "user1", &domain.ProfileUpdate{PhotoURL: strPtr("https://cdn.example/a.jpg")})
		assert.NoError(t, err)
		assert.Equal(t, domain.StageGoal, state.Stage)
		assessor.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("entering the assessment stage generates questions", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		merged := assessmentReadyProfile("user1")
		qs := questionSet()
		profileRepo.On("Upsert", ctx, mock.Anything).Return(merged, nil)
		store.On("Get", ctx, "user1").Return(nil, nil)
		assessor.On("Generate", ctx, merged).Return(qs, nil)
		store.On("Save", ctx, "user1", mock.Anything).Return(nil)

		state, err := uc.Advance(ctx, "user1", &domain.ProfileUpdate{JobGoal: strPtr("قيادة فريق")})
		assert.NoError(t, err)
		assert.Equal(t, domain.StageAssessment, state.Stage)
		assert.Len(t, state.Questions, 5)
	})

	t.Run("generation failure surfaces and nothing is stored", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		profileRepo.On("Upsert", ctx, mock.Anything).Return(assessmentReadyProfile("user1"), nil)
		store.On("Get", ctx, "user1").Return(nil, nil)
		assessor.On("Generate", ctx, mock.Anything).Return(nil, errors.New("model unavailable"))

		_, err := uc.Advance(ctx, "user1", &domain.ProfileUpdate{})
		assert.Error(t, err)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSubmitAssessment(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects submission outside the assessment stage", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), new(MockAssessor))

		certified := assessmentReadyProfile("user1")
		certified.IsCertified = boolPtr(true)
		profileRepo.On("GetByID", ctx, "user1").Return(certified, nil)

		_, err := uc.SubmitAssessment(ctx, "user1", answersFor(questionSet()))
		assert.Error(t, err)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("rejects incomplete answer sets", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		qs := questionSet()
		profileRepo.On("GetByID", ctx, "user1").Return(assessmentReadyProfile("user1"), nil)
		store.On("Get", ctx, "user1").Return(&domain.AssessmentAttempt{Questions: qs}, nil)

		_, err := uc.SubmitAssessment(ctx, "user1", answersFor(qs)[:3])
		assert.Error(t, err)
		assessor.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects answers to unknown questions", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		qs := questionSet()
		profileRepo.On("GetByID", ctx, "user1").Return(assessmentReadyProfile("user1"), nil)
		store.On("Get", ctx, "user1").Return(&domain.AssessmentAttempt{Questions: qs}, nil)

		answers := answersFor(qs)
		answers[0].Question = "سؤال مزيف"

		_, err := uc.SubmitAssessment(ctx, "user1", answers)
		assert.Error(t, err)
		assessor.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("passing persists score and certification together", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		qs := questionSet()
		answers := answersFor(qs)
		profileRepo.On("GetByID", ctx, "user1").Return(assessmentReadyProfile("user1"), nil)
		store.On("Get", ctx, "user1").Return(&domain.AssessmentAttempt{Questions: qs}, nil)
		assessor.On("Evaluate", ctx, qs, answers).Return(&domain.AssessmentResult{Score: 85, Passed: true}, nil)

		certified := assessmentReadyProfile("user1")
		certified.IsCertified = boolPtr(true)
		score := 85
		certified.AssessmentScore = &score

		var captured *domain.ProfileUpdate
		profileRepo.On("Upsert", ctx, mock.MatchedBy(func(upd *domain.ProfileUpdate) bool {
			captured = upd
			return true
		})).Return(certified, nil)
		store.On("Clear", ctx, "user1").Return(nil)

		result, err := uc.SubmitAssessment(ctx, "user1", answers)
		assert.NoError(t, err)
		assert.Equal(t, 85, result.Score)
		assert.True(t, result.Passed)
		assert.Equal(t, domain.StageResult, result.Stage)

		assert.NotNil(t, captured.Certification)
		assert.Equal(t, 85, captured.Certification.Score)
		assert.True(t, captured.Certification.Certified)
		assert.Nil(t, captured.FullName, "submission must not touch other fields")
	})

	t.Run("failing still lands on the result stage", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		qs := questionSet()
		answers := answersFor(qs)
		profileRepo.On("GetByID", ctx, "user1").Return(assessmentReadyProfile("user1"), nil)
		store.On("Get", ctx, "user1").Return(&domain.AssessmentAttempt{Questions: qs}, nil)
		assessor.On("Evaluate", ctx, qs, answers).Return(&domain.AssessmentResult{Score: 40, Passed: false}, nil)

		failed := assessmentReadyProfile("user1")
		failed.IsCertified = boolPtr(false)
		score := 40
		failed.AssessmentScore = &score
		profileRepo.On("Upsert", ctx, mock.Anything).Return(failed, nil)
		store.On("Clear", ctx, "user1").Return(nil)

		result, err := uc.SubmitAssessment(ctx, "user1", answers)
		assert.NoError(t, err)
		assert.False(t, result.Passed)
		assert.Equal(t, domain.StageResult, result.Stage, "a completed evaluation always shows the result")
		assert.Equal(t, domain.StageAssessment, domain.ResumeStage(result.Profile), "the next state fetch offers a retry")
		store.AssertCalled(t, "Clear", ctx, "user1")
	})

	t.Run("evaluator failure persists nothing", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		store := new(MockAttemptStore)
		assessor := new(MockAssessor)
		uc := usecase.NewOnboardingUsecase(profileRepo, store, new(MockExtractor), assessor)

		qs := questionSet()
		answers := answersFor(qs)
		profileRepo.On("GetByID", ctx, "user1").Return(assessmentReadyProfile("user1"), nil)
		store.On("Get", ctx, "user1").Return(&domain.AssessmentAttempt{Questions: qs}, nil)
		assessor.On("Evaluate", ctx, qs, answers).Return(nil, errors.New("timeout"))

		_, err := uc.SubmitAssessment(ctx, "user1", answers)
		assert.Error(t, err)
		profileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})
}

func TestParseCV(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text is rejected before reaching the model", func(t *testing.T) {
		extractor := new(MockExtractor)
		uc := usecase.NewOnboardingUsecase(new(MockProfileRepo), new(MockAttemptStore), extractor, new(MockAssessor))

		_, err := uc.ParseCVText(ctx, "user1", "   ")
		assert.Error(t, err)
		extractor.AssertNotCalled(t, "ParseText", mock.Anything, mock.Anything)
	})

	t.Run("extraction passes through untouched", func(t *testing.T) {
		extractor := new(MockExtractor)
		uc := usecase.NewOnboardingUsecase(new(MockProfileRepo), new(MockAttemptStore), extractor, new(MockAssessor))

		expected := &domain.CVExtraction{FullName: "سارة", Title: "مهندسة", Skills: []string{"Go"}}
		extractor.On("ParseText", ctx, "نص السيرة").Return(expected, nil)

		got, err := uc.ParseCVText(ctx, "user1", "نص السيرة")
		assert.NoError(t, err)
		assert.Equal(t, expected, got)
	})
}
