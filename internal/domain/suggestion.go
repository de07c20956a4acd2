package domain

import "context"

// SuggestionUsecase drives the recruiter-facing AI features that sit outside
// the onboarding pipeline but follow the same generative-service pattern.
type SuggestionUsecase interface {
	// SuggestCandidates matches the recruiter's active postings against the
	// certified candidate pool. Returns an empty list when the recruiter has
	// no active jobs or no candidates exist.
	SuggestCandidates(ctx context.Context, recruiterID string) ([]AISuggestion, error)
	// LandingTeaser generates the public landing-page pitch.
	LandingTeaser(ctx context.Context, userInput string) (string, error)
}
