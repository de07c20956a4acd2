package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"masar-backend/internal/domain"
)

var questionSetSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {Type: genai.TypeString},
			"type":     {Type: genai.TypeString, Enum: []string{"multiple_choice", "text"}},
			"options": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 4 options for multiple_choice questions.",
			},
		},
		Required: []string{"question", "type"},
	},
}

var evaluationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score": {Type: genai.TypeInteger, Description: "The overall score from 0 to 100."},
	},
	Required: []string{"score"},
}

// Assessor generates and evaluates the certification assessment.
type Assessor struct {
	generator jsonGenerator
}

func NewAssessor(generator jsonGenerator) *Assessor {
	return &Assessor{generator: generator}
}

// Generate produces the per-candidate question set. The fixed shape is
// enforced locally because the schema alone cannot express the 3+2 split.
func (a *Assessor) Generate(ctx context.Context, profile *domain.Profile) ([]domain.AssessmentQuestion, error) {
	var jobGoal string
	if profile.JobGoal != nil {
		jobGoal = *profile.JobGoal
	}

	prompt := fmt.Sprintf(`As a technical recruitment expert, create a short personalized assessment for the following candidate. The assessment must be written entirely in Arabic.

Candidate profile:
- Current title: %s
- Skills: %s
- Summary: %s
- Job goal: %s

Assessment requirements:
1. Create exactly 5 questions.
2. 3 multiple_choice questions testing hard technical knowledge relevant to the job goal and listed skills.
3. 2 open text questions assessing soft skills (problem solving, communication) in a professional context.
4. Each multiple_choice question must have exactly 4 clear and concise options with only one correct answer.
5. Questions must be varied and cover different aspects of the target role.`,
		profile.Title, strings.Join(profile.Skills, ", "), profile.Summary, jobGoal)

	raw, err := a.generator.GenerateJSON(ctx, prompt, questionSetSchema)
	if err != nil {
		return nil, err
	}

	var questions []domain.AssessmentQuestion
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &questions); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}
	if err := domain.ValidateQuestionSet(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Evaluate scores the full submission in a single round-trip. The rubric is
// delegated to the model; only the score range and pass threshold are
// enforced here.
func (a *Assessor) Evaluate(ctx context.Context, questions []domain.AssessmentQuestion, answers []domain.UserAnswer) (*domain.AssessmentResult, error) {
	answerByQuestion := make(map[string]string, len(answers))
	for _, ans := range answers {
		answerByQuestion[ans.Question] = ans.Answer
	}

	var sb strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&sb, "Question %d (%s): %s\n", i+1, q.Type, q.Question)
		if len(q.Options) > 0 {
			fmt.Fprintf(&sb, "Options: %s\n", strings.Join(q.Options, " | "))
		}
		fmt.Fprintf(&sb, "Candidate answer: %s\n\n", answerByQuestion[q.Question])
	}

	prompt := fmt.Sprintf(`As an expert recruitment evaluator, grade the following candidate answers.

Questions and answers:
%s
Your task:
1. Grade every answer carefully.
2. For multiple_choice questions, determine whether the answer is correct.
3. For text questions, judge the quality, reasoning and clarity of the answer against professional standards.
4. Compute one overall percentage score from 0 to 100 across all questions.
5. Important: be wary of answers that are overly generic, very short, or likely copied from an external source. Lower the score when an answer lacks originality or detail.`,
		sb.String())

	raw, err := a.generator.GenerateJSON(ctx, prompt, evaluationSchema)
	if err != nil {
		return nil, err
	}

	var result struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &result); err != nil {
		return nil, fmt.Errorf("decode evaluation: %w", err)
	}

	score := result.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &domain.AssessmentResult{
		Score:  score,
		Passed: score >= domain.PassThreshold,
	}, nil
}
