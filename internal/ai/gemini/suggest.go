package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"masar-backend/internal/domain"
)

const maxSuggestions = 3

var suggestionsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"candidate_id": {
						Type:        genai.TypeString,
						Description: "The id of the suggested candidate, copied exactly from the input.",
					},
					"justification": {
						Type:        genai.TypeString,
						Description: "One sentence explaining why this candidate fits.",
					},
				},
				Required: []string{"candidate_id", "justification"},
			},
		},
	},
	Required: []string{"suggestions"},
}

// Suggester matches a recruiter's postings against the certified pool.
type Suggester struct {
	generator jsonGenerator
}

func NewSuggester(generator jsonGenerator) *Suggester {
	return &Suggester{generator: generator}
}

func (s *Suggester) Suggest(ctx context.Context, jobs []domain.JobPosting, candidates []domain.Profile) ([]domain.AISuggestion, error) {
	type jobPayload struct {
		Title          string   `json:"title"`
		RequiredSkills []string `json:"required_skills"`
	}
	type candidatePayload struct {
		ID      string   `json:"id"`
		Title   string   `json:"title"`
		Skills  []string `json:"skills"`
		Summary string   `json:"summary"`
		JobGoal *string  `json:"job_goal,omitempty"`
	}

	jobsInput := make([]jobPayload, 0, len(jobs))
	for _, j := range jobs {
		jobsInput = append(jobsInput, jobPayload{Title: j.Title, RequiredSkills: j.RequiredSkills})
	}

	known := make(map[string]bool, len(candidates))
	candidatesInput := make([]candidatePayload, 0, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
		candidatesInput = append(candidatesInput, candidatePayload{
			ID: c.ID, Title: c.Title, Skills: c.Skills, Summary: c.Summary, JobGoal: c.JobGoal,
		})
	}

	jobsJSON, err := json.Marshal(jobsInput)
	if err != nil {
		return nil, fmt.Errorf("marshal jobs payload: %w", err)
	}
	candidatesJSON, err := json.Marshal(candidatesInput)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates payload: %w", err)
	}

	prompt := fmt.Sprintf(`As a talent acquisition expert, suggest the best certified candidates for this company. Justifications must be in Arabic.

The company has the following open jobs on the platform:
%s

The certified candidate pool:
%s

Your task:
1. Pick at most %d candidates whose skills and goals best match the open jobs.
2. For each pick, copy the candidate id exactly as given and write a one-sentence justification.
3. If no candidate is a reasonable match, return an empty list.`,
		string(jobsJSON), string(candidatesJSON), maxSuggestions)

	raw, err := s.generator.GenerateJSON(ctx, prompt, suggestionsSchema)
	if err != nil {
		return nil, err
	}

	var result struct {
		Suggestions []domain.AISuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &result); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}

	// Drop hallucinated ids; the model only gets to rank, not invent.
	suggestions := make([]domain.AISuggestion, 0, maxSuggestions)
	for _, sug := range result.Suggestions {
		if !known[sug.CandidateID] {
			continue
		}
		suggestions = append(suggestions, sug)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	if len(suggestions) == 0 && len(result.Suggestions) > 0 {
		return nil, fmt.Errorf("suggestions referenced only unknown candidate ids")
	}
	return suggestions, nil
}

// textGenerator is the plain-text slice of Generator.
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Copywriter produces the landing-page teaser.
type Copywriter struct {
	generator textGenerator
}

func NewCopywriter(generator textGenerator) *Copywriter {
	return &Copywriter{generator: generator}
}

func (c *Copywriter) Teaser(ctx context.Context, userInput string) (string, error) {
	prompt := fmt.Sprintf(`A visitor on the Masar landing page typed the following into a text box describing what they are looking for.
Visitor input: %q

Act as a persuasive assistant for Masar, a talent marketplace.
- Your response must be in Arabic.
- Keep it short, exciting and encouraging (2-3 sentences).
- Address the visitor's input directly and show how Masar solves their need.
- End with a strong, clear call to action to sign up.
- Do not use markdown or any special formatting. Return plain text only.`,
		userInput)

	return c.generator.GenerateText(ctx, prompt)
}
