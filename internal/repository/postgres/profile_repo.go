package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
)

const profileColumns = `
	id, COALESCE(full_name, ''), COALESCE(title, ''), COALESCE(summary, ''),
	experience_years, COALESCE(skills, '{}'), photo_url, job_goal, credly_url,
	is_certified, assessment_score, holistic_analysis,
	company_name, company_website, company_description, company_logo_url,
	company_size, industry, updated_at`

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var skills []string
	var analysisJSON []byte

	err := row.Scan(
		&p.ID, &p.FullName, &p.Title, &p.Summary,
		&p.ExperienceYears, pq.Array(&skills), &p.PhotoURL, &p.JobGoal, &p.CredlyURL,
		&p.IsCertified, &p.AssessmentScore, &analysisJSON,
		&p.CompanyName, &p.CompanyWebsite, &p.CompanyDescription, &p.CompanyLogoURL,
		&p.CompanySize, &p.Industry, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Skills = skills

	if len(analysisJSON) > 0 {
		var analysis domain.HolisticAnalysis
		if err := json.Unmarshal(analysisJSON, &analysis); err != nil {
			return nil, fmt.Errorf("decode holistic_analysis: %w", err)
		}
		p.HolisticAnalysis = &analysis
	}
	return &p, nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateErr(err, "profile")
	}
	return p, nil
}

// Upsert merges only the non-nil fields of the update into the stored row.
// The statement is built per call so an absent field never appears in the
// column list and cannot clobber stored data.
func (r *profileRepo) Upsert(ctx context.Context, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	if upd.ID == "" {
		return nil, apperror.BadRequest("profile id is required")
	}

	cols := []string{"id"}
	args := []any{upd.ID}

	add := func(col string, val any) {
		cols = append(cols, col)
		args = append(args, val)
	}

	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Summary != nil {
		add("summary", *upd.Summary)
	}
	if upd.ExperienceYears != nil {
		add("experience_years", *upd.ExperienceYears)
	}
	if upd.Skills != nil {
		add("skills", pq.Array(*upd.Skills))
	}
	if upd.PhotoURL != nil {
		add("photo_url", *upd.PhotoURL)
	}
	if upd.JobGoal != nil {
		add("job_goal", *upd.JobGoal)
	}
	if upd.CredlyURL != nil {
		add("credly_url", *upd.CredlyURL)
	}
	if upd.Certification != nil {
		add("assessment_score", upd.Certification.Score)
		add("is_certified", upd.Certification.Certified)
	}
	if upd.HolisticAnalysis != nil {
		analysisJSON, err := json.Marshal(upd.HolisticAnalysis)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		add("holistic_analysis", analysisJSON)
	}
	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.CompanyWebsite != nil {
		add("company_website", *upd.CompanyWebsite)
	}
	if upd.CompanyDescription != nil {
		add("company_description", *upd.CompanyDescription)
	}
	if upd.CompanyLogoURL != nil {
		add("company_logo_url", *upd.CompanyLogoURL)
	}
	if upd.CompanySize != nil {
		add("company_size", *upd.CompanySize)
	}
	if upd.Industry != nil {
		add("industry", *upd.Industry)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	setClauses := make([]string, 0, len(cols))
	for _, col := range cols[1:] {
		setClauses = append(setClauses, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(
		`INSERT INTO profiles (%s) VALUES (%s)
		 ON CONFLICT (id) DO UPDATE SET %s
		 RETURNING %s`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(setClauses, ", "),
		profileColumns,
	)

	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateErr(err, "profile")
	}
	return p, nil
}

func (r *profileRepo) ListCertified(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT` + profileColumns + `
		FROM profiles
		WHERE is_certified = TRUE
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err, "profiles")
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, translateErr(err, "profiles")
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "profiles")
	}
	return profiles, nil
}
