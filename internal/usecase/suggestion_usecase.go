package usecase

import (
	"context"
	"strings"

	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
	"masar-backend/pkg/logger"
)

type suggestionUsecase struct {
	jobRepo     domain.JobRepository
	profileRepo domain.ProfileRepository
	suggester   domain.CandidateSuggester
	copywriter  domain.TeaserWriter
}

func NewSuggestionUsecase(
	jobRepo domain.JobRepository,
	profileRepo domain.ProfileRepository,
	suggester domain.CandidateSuggester,
	copywriter domain.TeaserWriter,
) domain.SuggestionUsecase {
	return &suggestionUsecase{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		suggester:   suggester,
		copywriter:  copywriter,
	}
}

func (u *suggestionUsecase) SuggestCandidates(ctx context.Context, recruiterID string) ([]domain.AISuggestion, error) {
	jobs, err := u.jobRepo.ListByCompany(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	active := jobs[:0]
	for _, j := range jobs {
		if j.IsActive {
			active = append(active, j)
		}
	}
	if len(active) == 0 {
		return []domain.AISuggestion{}, nil
	}

	candidates, err := u.profileRepo.ListCertified(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.AISuggestion{}, nil
	}

	suggestions, err := u.suggester.Suggest(ctx, active, candidates)
	if err != nil {
		logger.Log.Error("candidate suggestion failed", "recruiter_id", recruiterID, "error", err)
		return nil, apperror.New(502, "Could not generate candidate suggestions", err)
	}
	return suggestions, nil
}

func (u *suggestionUsecase) LandingTeaser(ctx context.Context, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", apperror.BadRequest("Input text is required")
	}
	// Cap free-text input from the unauthenticated landing page.
	if len(userInput) > 2000 {
		return "", apperror.BadRequest("Input text is too long")
	}

	teaser, err := u.copywriter.Teaser(ctx, userInput)
	if err != nil {
		logger.Log.Error("landing teaser failed", "error", err)
		return "", apperror.New(502, "Could not generate a response", err)
	}
	return strings.TrimSpace(teaser), nil
}
