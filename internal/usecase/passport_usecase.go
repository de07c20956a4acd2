package usecase

import (
	"context"

	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
)

type passportUsecase struct {
	profileRepo  domain.ProfileRepository
	passportRepo domain.PassportRepository
}

func NewPassportUsecase(profileRepo domain.ProfileRepository, passportRepo domain.PassportRepository) domain.PassportUsecase {
	return &passportUsecase{profileRepo: profileRepo, passportRepo: passportRepo}
}

func (u *passportUsecase) GetPassport(ctx context.Context, userID string) (*domain.Passport, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}
	return loadPassport(ctx, u.passportRepo, profile)
}

// GetPublicPassport is the recruiter view. Only certified candidates are
// visible; everyone else is indistinguishable from absent.
func (u *passportUsecase) GetPublicPassport(ctx context.Context, candidateID string) (*domain.Passport, error) {
	profile, err := u.profileRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.IsCertified == nil || !*profile.IsCertified {
		return nil, apperror.NotFound("Candidate not found")
	}
	return loadPassport(ctx, u.passportRepo, profile)
}

func (u *passportUsecase) AddCertificate(ctx context.Context, userID string, cert *domain.Certificate) (*domain.Certificate, error) {
	cert.UserID = userID
	if cert.Name == "" || cert.IssuingOrganization == "" {
		return nil, apperror.BadRequest("Certificate name and issuing organization are required")
	}
	if err := u.passportRepo.AddCertificate(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (u *passportUsecase) DeleteCertificate(ctx context.Context, userID, certID string) error {
	return u.passportRepo.DeleteCertificate(ctx, userID, certID)
}

func (u *passportUsecase) AddProject(ctx context.Context, userID string, project *domain.Project) (*domain.Project, error) {
	project.UserID = userID
	if project.Title == "" {
		return nil, apperror.BadRequest("Project title is required")
	}
	if err := u.passportRepo.AddProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (u *passportUsecase) DeleteProject(ctx context.Context, userID, projectID string) error {
	return u.passportRepo.DeleteProject(ctx, userID, projectID)
}

func (u *passportUsecase) UpsertSocialLink(ctx context.Context, userID string, platform domain.SocialPlatform, url string) (*domain.SocialLink, error) {
	if !platform.IsValid() {
		return nil, apperror.BadRequest("Unknown social platform")
	}
	if url == "" {
		return nil, apperror.BadRequest("URL is required")
	}
	return u.passportRepo.UpsertSocialLink(ctx, &domain.SocialLink{
		UserID:   userID,
		Platform: platform,
		URL:      url,
	})
}

func (u *passportUsecase) DeleteSocialLink(ctx context.Context, userID, linkID string) error {
	return u.passportRepo.DeleteSocialLink(ctx, userID, linkID)
}
