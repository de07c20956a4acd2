package domain

import "context"

// Interfaces over the generative service. Every implementation must pair its
// call with an output schema and validate the parsed result before returning
// it; non-conforming output is an error, never partially trusted data.

type CVExtractor interface {
	ParseText(ctx context.Context, cvText string) (*CVExtraction, error)
	ParseDocument(ctx context.Context, data []byte, mimeType string) (*CVExtraction, error)
}

type AssessmentService interface {
	// Generate produces a question set tailored to the candidate's title,
	// skills, summary and job goal, satisfying ValidateQuestionSet.
	Generate(ctx context.Context, profile *Profile) ([]AssessmentQuestion, error)
	// Evaluate scores the submitted answers in one round-trip and applies
	// the pass threshold. Score is always within [0,100].
	Evaluate(ctx context.Context, questions []AssessmentQuestion, answers []UserAnswer) (*AssessmentResult, error)
}

type ProfileAnalyzer interface {
	Analyze(ctx context.Context, passport *Passport) (*HolisticAnalysis, error)
}

type CandidateSuggester interface {
	// Suggest returns at most 3 suggestions; every candidate_id is
	// guaranteed to reference a profile from the given candidate set.
	Suggest(ctx context.Context, jobs []JobPosting, candidates []Profile) ([]AISuggestion, error)
}

type TeaserWriter interface {
	// Teaser turns a visitor's free-text need into a short plain-text pitch.
	Teaser(ctx context.Context, userInput string) (string, error)
}

// AISuggestion pairs a candidate with a one-sentence justification.
type AISuggestion struct {
	CandidateID   string `json:"candidate_id"`
	Justification string `json:"justification"`
}
