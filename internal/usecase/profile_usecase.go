package usecase

import (
	"context"

	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
	"masar-backend/pkg/logger"
)

type profileUsecase struct {
	profileRepo  domain.ProfileRepository
	passportRepo domain.PassportRepository
	analyzer     domain.ProfileAnalyzer
}

func NewProfileUsecase(
	profileRepo domain.ProfileRepository,
	passportRepo domain.PassportRepository,
	analyzer domain.ProfileAnalyzer,
) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo:  profileRepo,
		passportRepo: passportRepo,
		analyzer:     analyzer,
	}
}

func (u *profileUsecase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return u.profileRepo.Upsert(ctx, &domain.ProfileUpdate{ID: userID})
	}
	return profile, nil
}

func (u *profileUsecase) UpdateMyProfile(ctx context.Context, userID string, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	upd.ID = userID
	// Certification and analysis are written only by their own flows.
	upd.Certification = nil
	upd.HolisticAnalysis = nil
	return u.profileRepo.Upsert(ctx, upd)
}

// UpdateCompany accepts only the company subset of the profile.
func (u *profileUsecase) UpdateCompany(ctx context.Context, userID string, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	company := &domain.ProfileUpdate{
		ID:                 userID,
		CompanyName:        upd.CompanyName,
		CompanyWebsite:     upd.CompanyWebsite,
		CompanyDescription: upd.CompanyDescription,
		CompanyLogoURL:     upd.CompanyLogoURL,
		CompanySize:        upd.CompanySize,
		Industry:           upd.Industry,
	}
	return u.profileRepo.Upsert(ctx, company)
}

func (u *profileUsecase) ListCertifiedCandidates(ctx context.Context) ([]domain.Profile, error) {
	return u.profileRepo.ListCertified(ctx)
}

// GenerateAnalysis runs the holistic analysis over the full passport and
// persists the result on the profile, replacing any previous analysis.
func (u *profileUsecase) GenerateAnalysis(ctx context.Context, userID string) (*domain.HolisticAnalysis, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}

	passport, err := loadPassport(ctx, u.passportRepo, profile)
	if err != nil {
		return nil, err
	}

	analysis, err := u.analyzer.Analyze(ctx, passport)
	if err != nil {
		logger.Log.Error("holistic analysis failed", "user_id", userID, "error", err)
		return nil, apperror.New(502, "Could not generate the profile analysis", err)
	}

	if _, err := u.profileRepo.Upsert(ctx, &domain.ProfileUpdate{
		ID:               userID,
		HolisticAnalysis: analysis,
	}); err != nil {
		return nil, err
	}
	return analysis, nil
}

// loadPassport assembles the aggregate view shared by the analysis and the
// passport endpoints.
func loadPassport(ctx context.Context, repo domain.PassportRepository, profile *domain.Profile) (*domain.Passport, error) {
	certs, err := repo.ListCertificates(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	projects, err := repo.ListProjects(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	links, err := repo.ListSocialLinks(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Passport{
		Profile:      profile,
		Certificates: certs,
		Projects:     projects,
		SocialLinks:  links,
	}, nil
}
