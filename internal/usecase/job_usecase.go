package usecase

import (
	"context"
	"errors"

	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.JobPosting) (*domain.JobPosting, error) {
	// Jobs hang off the recruiter's own profile row.
	job.CompanyID = userID

	if job.Title == "" {
		return nil, apperror.BadRequest("Job title is required")
	}
	if job.Description == "" {
		return nil, apperror.BadRequest("Job description is required")
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUsecase) ListPublicJobs(ctx context.Context) ([]domain.JobPostingWithCompany, error) {
	return u.jobRepo.ListActiveWithCompany(ctx)
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, userID string) ([]domain.JobPosting, error) {
	return u.jobRepo.ListByCompany(ctx, userID)
}

func (u *jobUsecase) UpdateJob(ctx context.Context, userID string, job *domain.JobPosting) (*domain.JobPosting, error) {
	existing, err := u.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}
	if existing.CompanyID != userID {
		return nil, apperror.Forbidden("You can only modify your own job postings")
	}

	job.CompanyID = existing.CompanyID
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	job.CreatedAt = existing.CreatedAt
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, userID, jobID string) error {
	existing, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return err
	}
	if existing.CompanyID != userID {
		return apperror.Forbidden("You can only delete your own job postings")
	}
	return u.jobRepo.Delete(ctx, jobID)
}

func (u *jobUsecase) ListMatchingJobs(ctx context.Context, userID string) ([]domain.MatchedJob, error) {
	return u.jobRepo.ListMatchedForUser(ctx, userID)
}
