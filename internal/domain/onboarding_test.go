package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"masar-backend/internal/domain"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func baseProfile() *domain.Profile {
	return &domain.Profile{
		ID:       "user1",
		FullName: "سارة أحمد",
		Title:    "مهندسة برمجيات",
		Skills:   []string{"Go", "PostgreSQL"},
		PhotoURL: strPtr("https://cdn.example/avatar.jpg"),
		JobGoal:  strPtr("قيادة فريق تطوير"),
	}
}

func TestResumeStage(t *testing.T) {
	t.Run("nil profile starts at profile data", func(t *testing.T) {
		assert.Equal(t, domain.StageProfileData, domain.ResumeStage(nil))
	})

	t.Run("missing identity fields stay at profile data", func(t *testing.T) {
		p := baseProfile()
		p.FullName = ""
		assert.Equal(t, domain.StageProfileData, domain.ResumeStage(p))

		p = baseProfile()
		p.Title = ""
		assert.Equal(t, domain.StageProfileData, domain.ResumeStage(p))

		p = baseProfile()
		p.Skills = nil
		assert.Equal(t, domain.StageProfileData, domain.ResumeStage(p))
	})

	t.Run("photo before goal before assessment", func(t *testing.T) {
		p := baseProfile()
		p.PhotoURL = nil
		p.JobGoal = nil
		assert.Equal(t, domain.StagePhoto, domain.ResumeStage(p))

		p.PhotoURL = strPtr("https://cdn.example/avatar.jpg")
		assert.Equal(t, domain.StageGoal, domain.ResumeStage(p))

		p.JobGoal = strPtr("هدف")
		assert.Equal(t, domain.StageAssessment, domain.ResumeStage(p))
	})

	t.Run("empty strings count as missing", func(t *testing.T) {
		p := baseProfile()
		p.PhotoURL = strPtr("")
		assert.Equal(t, domain.StagePhoto, domain.ResumeStage(p))

		p = baseProfile()
		p.JobGoal = strPtr("")
		assert.Equal(t, domain.StageGoal, domain.ResumeStage(p))
	})

	t.Run("failed assessment keeps the assessment stage", func(t *testing.T) {
		p := baseProfile()
		score := 40
		p.AssessmentScore = &score
		p.IsCertified = boolPtr(false)
		assert.Equal(t, domain.StageAssessment, domain.ResumeStage(p))
	})

	t.Run("certified profile resumes at result", func(t *testing.T) {
		p := baseProfile()
		p.IsCertified = boolPtr(true)
		assert.Equal(t, domain.StageResult, domain.ResumeStage(p))
	})
}

func validQuestionSet() []domain.AssessmentQuestion {
	return []domain.AssessmentQuestion{
		{Question: "س1", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س2", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س3", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س4", Type: domain.QuestionText},
		{Question: "س5", Type: domain.QuestionText},
	}
}

func TestValidateQuestionSet(t *testing.T) {
	t.Run("accepts the canonical shape", func(t *testing.T) {
		assert.NoError(t, domain.ValidateQuestionSet(validQuestionSet()))
	})

	t.Run("rejects wrong count", func(t *testing.T) {
		err := domain.ValidateQuestionSet(validQuestionSet()[:4])
		assert.ErrorIs(t, err, domain.ErrQuestionSetShape)
	})

	t.Run("rejects wrong type split", func(t *testing.T) {
		qs := validQuestionSet()
		qs[3] = domain.AssessmentQuestion{Question: "س4", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}}
		err := domain.ValidateQuestionSet(qs)
		assert.ErrorIs(t, err, domain.ErrQuestionSetShape)
	})

	t.Run("rejects multiple choice without 4 options", func(t *testing.T) {
		qs := validQuestionSet()
		qs[0].Options = []string{"أ", "ب"}
		err := domain.ValidateQuestionSet(qs)
		assert.ErrorIs(t, err, domain.ErrQuestionSetShape)
	})

	t.Run("rejects text question with options", func(t *testing.T) {
		qs := validQuestionSet()
		qs[4].Options = []string{"أ"}
		err := domain.ValidateQuestionSet(qs)
		assert.ErrorIs(t, err, domain.ErrQuestionSetShape)
	})

	t.Run("rejects unknown type and empty question", func(t *testing.T) {
		qs := validQuestionSet()
		qs[0].Type = "essay"
		assert.ErrorIs(t, domain.ValidateQuestionSet(qs), domain.ErrQuestionSetShape)

		qs = validQuestionSet()
		qs[1].Question = ""
		assert.ErrorIs(t, domain.ValidateQuestionSet(qs), domain.ErrQuestionSetShape)
	})
}

func TestProfileUpdateApplyTo(t *testing.T) {
	t.Run("nil fields leave the snapshot untouched", func(t *testing.T) {
		p := baseProfile()
		original := *p

		(&domain.ProfileUpdate{ID: p.ID}).ApplyTo(p)

		assert.Equal(t, original.FullName, p.FullName)
		assert.Equal(t, original.Skills, p.Skills)
		assert.Equal(t, original.PhotoURL, p.PhotoURL)
	})

	t.Run("non-nil fields overwrite", func(t *testing.T) {
		p := baseProfile()
		upd := &domain.ProfileUpdate{
			ID:      p.ID,
			Title:   strPtr("مديرة هندسة"),
			Skills:  &[]string{"Go", "Kubernetes"},
			JobGoal: strPtr("إدارة المنتج"),
		}
		upd.ApplyTo(p)

		assert.Equal(t, "مديرة هندسة", p.Title)
		assert.Equal(t, []string{"Go", "Kubernetes"}, p.Skills)
		assert.Equal(t, "إدارة المنتج", *p.JobGoal)
		assert.Equal(t, "سارة أحمد", p.FullName)
	})

	t.Run("certification applies score and flag together", func(t *testing.T) {
		p := baseProfile()
		upd := &domain.ProfileUpdate{
			ID:            p.ID,
			Certification: &domain.Certification{Score: 85, Certified: true},
		}
		upd.ApplyTo(p)

		assert.Equal(t, 85, *p.AssessmentScore)
		assert.True(t, *p.IsCertified)
		assert.Equal(t, domain.StageResult, domain.ResumeStage(p))
	})
}

func TestCVExtractionToUpdate(t *testing.T) {
	years := 5
	e := &domain.CVExtraction{
		FullName:        "سارة أحمد",
		Title:           "مهندسة برمجيات",
		ExperienceYears: &years,
		Skills:          []string{"Go"},
	}

	upd := e.ToUpdate("user1")

	assert.Equal(t, "user1", upd.ID)
	assert.Equal(t, "سارة أحمد", *upd.FullName)
	assert.Equal(t, 5, *upd.ExperienceYears)
	assert.Nil(t, upd.Summary, "absent summary must stay nil so the merge skips it")
	assert.Nil(t, upd.Certification)
}
