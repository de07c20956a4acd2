package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"masar-backend/internal/domain"
)

// fakeGenerator returns canned output and records the last prompt.
type fakeGenerator struct {
	output     string
	err        error
	lastPrompt string
	lastSchema *genai.Schema
	lastMIME   string
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.lastPrompt = prompt
	f.lastSchema = schema
	return f.output, f.err
}

func (f *fakeGenerator) GenerateJSONWithFile(_ context.Context, prompt string, _ []byte, mimeType string, schema *genai.Schema) (string, error) {
	f.lastPrompt = prompt
	f.lastSchema = schema
	f.lastMIME = mimeType
	return f.output, f.err
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.output, f.err
}

func TestStripJSONFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripJSONFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences(`{"a":1}`))
}

func TestExtractor(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a complete extraction", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"full_name":"سارة أحمد","title":"مهندسة برمجيات","summary":"خبرة خمس سنوات","experience_years":5,"skills":["Go","SQL"]}`}
		extractor := NewExtractor(gen)

		got, err := extractor.ParseText(ctx, "نص السيرة الذاتية")
		assert.NoError(t, err)
		assert.Equal(t, "سارة أحمد", got.FullName)
		assert.Equal(t, 5, *got.ExperienceYears)
		assert.Equal(t, []string{"Go", "SQL"}, got.Skills)
		assert.Same(t, cvExtractionSchema, gen.lastSchema)
	})

	t.Run("rejects extraction missing required fields", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"full_name":"سارة","title":"","skills":[]}`}
		extractor := NewExtractor(gen)

		_, err := extractor.ParseText(ctx, "نص")
		assert.Error(t, err)
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		gen := &fakeGenerator{output: "```json\n{\"full_name\":\"سارة\",\"title\":\"مهندسة\",\"skills\":[\"Go\"]}\n```"}
		extractor := NewExtractor(gen)

		got, err := extractor.ParseText(ctx, "نص")
		assert.NoError(t, err)
		assert.Equal(t, "سارة", got.FullName)
	})

	t.Run("forwards the document mime type", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"full_name":"سارة","title":"مهندسة","skills":["Go"]}`}
		extractor := NewExtractor(gen)

		_, err := extractor.ParseDocument(ctx, []byte("%PDF-1.4"), "application/pdf")
		assert.NoError(t, err)
		assert.Equal(t, "application/pdf", gen.lastMIME)
	})

	t.Run("drops negative experience years", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"full_name":"سارة","title":"مهندسة","experience_years":-2,"skills":["Go"]}`}
		extractor := NewExtractor(gen)

		got, err := extractor.ParseText(ctx, "نص")
		assert.NoError(t, err)
		assert.Nil(t, got.ExperienceYears)
	})
}

func validQuestionsJSON(t *testing.T) string {
	t.Helper()
	qs := []domain.AssessmentQuestion{
		{Question: "س1", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س2", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س3", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س4", Type: domain.QuestionText},
		{Question: "س5", Type: domain.QuestionText},
	}
	data, err := json.Marshal(qs)
	assert.NoError(t, err)
	return string(data)
}

func TestAssessorGenerate(t *testing.T) {
	ctx := context.Background()
	profile := &domain.Profile{ID: "u1", Title: "مهندسة", Skills: []string{"Go"}, Summary: "خبرة"}

	t.Run("accepts a conforming set and includes the profile in the prompt", func(t *testing.T) {
		gen := &fakeGenerator{output: validQuestionsJSON(t)}
		assessor := NewAssessor(gen)

		qs, err := assessor.Generate(ctx, profile)
		assert.NoError(t, err)
		assert.Len(t, qs, 5)
		assert.Contains(t, gen.lastPrompt, "مهندسة")
		assert.Contains(t, gen.lastPrompt, "Go")
	})

	t.Run("rejects a malformed set", func(t *testing.T) {
		gen := &fakeGenerator{output: `[{"question":"س1","type":"text"}]`}
		assessor := NewAssessor(gen)

		_, err := assessor.Generate(ctx, profile)
		assert.ErrorIs(t, err, domain.ErrQuestionSetShape)
	})

	t.Run("propagates generator errors", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("quota exceeded")}
		assessor := NewAssessor(gen)

		_, err := assessor.Generate(ctx, profile)
		assert.Error(t, err)
	})
}

func TestAssessorEvaluate(t *testing.T) {
	ctx := context.Background()
	questions := []domain.AssessmentQuestion{
		{Question: "س1", Type: domain.QuestionMultipleChoice, Options: []string{"أ", "ب", "ج", "د"}},
		{Question: "س2", Type: domain.QuestionText},
	}
	answers := []domain.UserAnswer{
		{Question: "س1", Answer: "أ"},
		{Question: "س2", Answer: "إجابة مفصلة"},
	}

	t.Run("applies the pass threshold", func(t *testing.T) {
		assessor := NewAssessor(&fakeGenerator{output: `{"score":70}`})
		result, err := assessor.Evaluate(ctx, questions, answers)
		assert.NoError(t, err)
		assert.Equal(t, 70, result.Score)
		assert.True(t, result.Passed)

		assessor = NewAssessor(&fakeGenerator{output: `{"score":69}`})
		result, err = assessor.Evaluate(ctx, questions, answers)
		assert.NoError(t, err)
		assert.False(t, result.Passed)
	})

	t.Run("clamps out-of-range scores", func(t *testing.T) {
		assessor := NewAssessor(&fakeGenerator{output: `{"score":140}`})
		result, err := assessor.Evaluate(ctx, questions, answers)
		assert.NoError(t, err)
		assert.Equal(t, 100, result.Score)

		assessor = NewAssessor(&fakeGenerator{output: `{"score":-5}`})
		result, err = assessor.Evaluate(ctx, questions, answers)
		assert.NoError(t, err)
		assert.Equal(t, 0, result.Score)
		assert.False(t, result.Passed)
	})

	t.Run("pairs answers with questions in the prompt", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"score":80}`}
		assessor := NewAssessor(gen)

		_, err := assessor.Evaluate(ctx, questions, answers)
		assert.NoError(t, err)
		assert.Contains(t, gen.lastPrompt, "س1")
		assert.Contains(t, gen.lastPrompt, "إجابة مفصلة")
	})
}

func TestAnalyzer(t *testing.T) {
	ctx := context.Background()
	passport := &domain.Passport{Profile: &domain.Profile{ID: "u1", FullName: "سارة"}}

	t.Run("accepts a valid analysis", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"completeness_score":80,"consistency_score":75,"goal_clarity_score":90,"recruiter_summary":"مرشحة قوية","key_strengths":["Go","قيادة","تواصل"]}`}
		analyzer := NewAnalyzer(gen)

		analysis, err := analyzer.Analyze(ctx, passport)
		assert.NoError(t, err)
		assert.Equal(t, 80, analysis.CompletenessScore)
		assert.Len(t, analysis.KeyStrengths, 3)
	})

	t.Run("rejects out-of-range scores", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"completeness_score":120,"consistency_score":75,"goal_clarity_score":90,"recruiter_summary":"x","key_strengths":["a"]}`}
		analyzer := NewAnalyzer(gen)

		_, err := analyzer.Analyze(ctx, passport)
		assert.Error(t, err)
	})

	t.Run("trims surplus strengths", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"completeness_score":50,"consistency_score":50,"goal_clarity_score":50,"recruiter_summary":"ملخص","key_strengths":["أ","ب","ج","د","هـ"]}`}
		analyzer := NewAnalyzer(gen)

		analysis, err := analyzer.Analyze(ctx, passport)
		assert.NoError(t, err)
		assert.Len(t, analysis.KeyStrengths, 3)
	})

	t.Run("rejects fewer than three strengths", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"completeness_score":50,"consistency_score":50,"goal_clarity_score":50,"recruiter_summary":"ملخص","key_strengths":["أ","ب"]}`}
		analyzer := NewAnalyzer(gen)

		_, err := analyzer.Analyze(ctx, passport)
		assert.Error(t, err)
	})
}

func TestSuggester(t *testing.T) {
	ctx := context.Background()
	jobs := []domain.JobPosting{{Title: "مطورة Go", RequiredSkills: []string{"Go"}}}
	candidates := []domain.Profile{
		{ID: "cand-1", Title: "مهندسة", Skills: []string{"Go"}},
		{ID: "cand-2", Title: "محللة", Skills: []string{"SQL"}},
	}

	t.Run("filters hallucinated candidate ids", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"suggestions":[{"candidate_id":"cand-1","justification":"مطابقة"},{"candidate_id":"ghost","justification":"مختلقة"}]}`}
		suggester := NewSuggester(gen)

		got, err := suggester.Suggest(ctx, jobs, candidates)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "cand-1", got[0].CandidateID)
	})

	t.Run("caps suggestions at three", func(t *testing.T) {
		many := []domain.Profile{}
		var items []string
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			many = append(many, domain.Profile{ID: id})
			items = append(items, `{"candidate_id":"`+id+`","justification":"سبب"}`)
		}
		gen := &fakeGenerator{output: `{"suggestions":[` + strings.Join(items, ",") + `]}`}
		suggester := NewSuggester(gen)

		got, err := suggester.Suggest(ctx, jobs, many)
		assert.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("fails when every id is unknown", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"suggestions":[{"candidate_id":"ghost","justification":"مختلقة"}]}`}
		suggester := NewSuggester(gen)

		_, err := suggester.Suggest(ctx, jobs, candidates)
		assert.Error(t, err)
	})

	t.Run("empty suggestion list is fine", func(t *testing.T) {
		gen := &fakeGenerator{output: `{"suggestions":[]}`}
		suggester := NewSuggester(gen)

		got, err := suggester.Suggest(ctx, jobs, candidates)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCopywriter(t *testing.T) {
	ctx := context.Background()

	gen := &fakeGenerator{output: "انضم إلى مسار اليوم!"}
	writer := NewCopywriter(gen)

	teaser, err := writer.Teaser(ctx, "أبحث عن مطور")
	assert.NoError(t, err)
	assert.Equal(t, "انضم إلى مسار اليوم!", teaser)
	assert.Contains(t, gen.lastPrompt, "أبحث عن مطور")
}
