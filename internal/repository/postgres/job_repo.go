package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"masar-backend/internal/domain"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	job.ID = uuid.NewString()
	query := `INSERT INTO jobs (id, company_id, title, description, location, required_skills, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	          RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		job.ID, job.CompanyID, job.Title, job.Description, job.Location,
		pq.Array(job.RequiredSkills), job.IsActive,
	).Scan(&job.CreatedAt)
	if err != nil {
		return translateErr(err, "job")
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	query := `SELECT id, company_id, title, description, COALESCE(location, ''), COALESCE(required_skills, '{}'), is_active, created_at
	          FROM jobs WHERE id = $1`

	var j domain.JobPosting
	var skills []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
		pq.Array(&skills), &j.IsActive, &j.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateErr(err, "job")
	}
	j.RequiredSkills = skills
	return &j, nil
}

// ListActiveWithCompany joins each active posting with the recruiter profile
// fields the public marketplace shows.
func (r *jobRepo) ListActiveWithCompany(ctx context.Context) ([]domain.JobPostingWithCompany, error) {
	query := `SELECT j.id, j.company_id, j.title, j.description, COALESCE(j.location, ''),
	                 COALESCE(j.required_skills, '{}'), j.is_active, j.created_at,
	                 p.company_name, p.company_logo_url, p.industry
	          FROM jobs j
	          LEFT JOIN profiles p ON p.id = j.company_id
	          WHERE j.is_active = TRUE
	          ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err, "jobs")
	}
	defer rows.Close()

	jobs := []domain.JobPostingWithCompany{}
	for rows.Next() {
		var j domain.JobPostingWithCompany
		var skills []string
		if err := rows.Scan(
			&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
			pq.Array(&skills), &j.IsActive, &j.CreatedAt,
			&j.CompanyName, &j.CompanyLogoURL, &j.Industry,
		); err != nil {
			return nil, translateErr(err, "jobs")
		}
		j.RequiredSkills = skills
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "jobs")
	}
	return jobs, nil
}

func (r *jobRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.JobPosting, error) {
	query := `SELECT id, company_id, title, description, COALESCE(location, ''), COALESCE(required_skills, '{}'), is_active, created_at
	          FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, translateErr(err, "jobs")
	}
	defer rows.Close()

	jobs := []domain.JobPosting{}
	for rows.Next() {
		var j domain.JobPosting
		var skills []string
		if err := rows.Scan(
			&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location,
			pq.Array(&skills), &j.IsActive, &j.CreatedAt,
		); err != nil {
			return nil, translateErr(err, "jobs")
		}
		j.RequiredSkills = skills
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "jobs")
	}
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	query := `UPDATE jobs
	          SET title = $2, description = $3, location = $4, required_skills = $5, is_active = $6
	          WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location,
		pq.Array(job.RequiredSkills), job.IsActive,
	)
	if err != nil {
		return translateErr(err, "job")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return translateErr(err, "job")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMatchedForUser reads the externally populated user_jobs table. This
// service never writes to it.
func (r *jobRepo) ListMatchedForUser(ctx context.Context, userID string) ([]domain.MatchedJob, error) {
	query := `SELECT id, user_id, title, location, url, logo, inserted_at
	          FROM user_jobs WHERE user_id = $1 ORDER BY inserted_at DESC NULLS LAST`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, translateErr(err, "matched jobs")
	}
	defer rows.Close()

	matches := []domain.MatchedJob{}
	for rows.Next() {
		var m domain.MatchedJob
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Location, &m.URL, &m.Logo, &m.InsertedAt); err != nil {
			return nil, translateErr(err, "matched jobs")
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "matched jobs")
	}
	return matches, nil
}
