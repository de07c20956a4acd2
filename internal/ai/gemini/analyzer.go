package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"masar-backend/internal/domain"
)

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"completeness_score": {Type: genai.TypeInteger},
		"consistency_score":  {Type: genai.TypeInteger},
		"goal_clarity_score": {Type: genai.TypeInteger},
		"recruiter_summary":  {Type: genai.TypeString},
		"key_strengths": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{
		"completeness_score", "consistency_score", "goal_clarity_score",
		"recruiter_summary", "key_strengths",
	},
}

// Analyzer produces the holistic profile analysis from the full passport.
type Analyzer struct {
	generator jsonGenerator
}

func NewAnalyzer(generator jsonGenerator) *Analyzer {
	return &Analyzer{generator: generator}
}

func (a *Analyzer) Analyze(ctx context.Context, passport *domain.Passport) (*domain.HolisticAnalysis, error) {
	payload, err := json.Marshal(passport)
	if err != nil {
		return nil, fmt.Errorf("marshal passport payload: %w", err)
	}

	prompt := fmt.Sprintf(`As a career advisor, analyze the following candidate's complete career passport. Respond in Arabic.

Career passport (profile, certificates, projects, social links):
%s

Your task:
1. Score the profile completeness from 0 to 100 (how much of the passport is filled in with substantive content).
2. Score the internal consistency from 0 to 100 (do the title, skills, projects and goal tell one coherent story).
3. Score the clarity of the career goal from 0 to 100.
4. Write a short recruiter-facing summary (2-3 sentences) of the candidate.
5. List the candidate's 3 strongest selling points as key strengths.`,
		string(payload))

	raw, err := a.generator.GenerateJSON(ctx, prompt, analysisSchema)
	if err != nil {
		return nil, err
	}

	var analysis domain.HolisticAnalysis
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("decode holistic analysis: %w", err)
	}

	for _, score := range []int{analysis.CompletenessScore, analysis.ConsistencyScore, analysis.GoalClarityScore} {
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("holistic analysis score %d out of range", score)
		}
	}
	if analysis.RecruiterSummary == "" {
		return nil, fmt.Errorf("holistic analysis missing recruiter summary")
	}
	if len(analysis.KeyStrengths) < 3 {
		return nil, fmt.Errorf("holistic analysis returned %d key strengths, want 3", len(analysis.KeyStrengths))
	}
	analysis.KeyStrengths = analysis.KeyStrengths[:3]
	return &analysis, nil
}
