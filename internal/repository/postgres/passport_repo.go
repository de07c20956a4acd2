package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"masar-backend/internal/domain"
)

type passportRepo struct {
	db *pgxpool.Pool
}

func NewPassportRepository(db *pgxpool.Pool) domain.PassportRepository {
	return &passportRepo{db: db}
}

// ---------------------------------------------------------------------------
// Certificates
// ---------------------------------------------------------------------------

func (r *passportRepo) ListCertificates(ctx context.Context, userID string) ([]domain.Certificate, error) {
	query := `SELECT id, user_id, name, issuing_organization, issue_date, description, file_url, created_at
	          FROM certificates WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, translateErr(err, "certificates")
	}
	defer rows.Close()

	certs := []domain.Certificate{}
	for rows.Next() {
		var c domain.Certificate
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.IssuingOrganization,
			&c.IssueDate, &c.Description, &c.FileURL, &c.CreatedAt); err != nil {
			return nil, translateErr(err, "certificates")
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "certificates")
	}
	return certs, nil
}

func (r *passportRepo) AddCertificate(ctx context.Context, cert *domain.Certificate) error {
	cert.ID = uuid.NewString()
	query := `INSERT INTO certificates (id, user_id, name, issuing_organization, issue_date, description, file_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	          RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		cert.ID, cert.UserID, cert.Name, cert.IssuingOrganization,
		cert.IssueDate, cert.Description, cert.FileURL,
	).Scan(&cert.CreatedAt)
	if err != nil {
		return translateErr(err, "certificate")
	}
	return nil
}

func (r *passportRepo) DeleteCertificate(ctx context.Context, userID, certID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM certificates WHERE id = $1 AND user_id = $2`, certID, userID)
	if err != nil {
		return translateErr(err, "certificate")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

func (r *passportRepo) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `SELECT id, user_id, title, description, COALESCE(technologies, '{}'), project_url, image_url, created_at
	          FROM projects WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, translateErr(err, "projects")
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		var technologies []string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description,
			pq.Array(&technologies), &p.ProjectURL, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, translateErr(err, "projects")
		}
		p.Technologies = technologies
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "projects")
	}
	return projects, nil
}

func (r *passportRepo) AddProject(ctx context.Context, project *domain.Project) error {
	project.ID = uuid.NewString()
	query := `INSERT INTO projects (id, user_id, title, description, technologies, project_url, image_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	          RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		project.ID, project.UserID, project.Title, project.Description,
		pq.Array(project.Technologies), project.ProjectURL, project.ImageURL,
	).Scan(&project.CreatedAt)
	if err != nil {
		return translateErr(err, "project")
	}
	return nil
}

func (r *passportRepo) DeleteProject(ctx context.Context, userID, projectID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return translateErr(err, "project")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Social links
// ---------------------------------------------------------------------------

func (r *passportRepo) ListSocialLinks(ctx context.Context, userID string) ([]domain.SocialLink, error) {
	query := `SELECT id, user_id, platform, url, created_at
	          FROM social_links WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, translateErr(err, "social links")
	}
	defer rows.Close()

	links := []domain.SocialLink{}
	for rows.Next() {
		var l domain.SocialLink
		if err := rows.Scan(&l.ID, &l.UserID, &l.Platform, &l.URL, &l.CreatedAt); err != nil {
			return nil, translateErr(err, "social links")
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "social links")
	}
	return links, nil
}

// UpsertSocialLink keeps one link per (user, platform). A second submission
// for the same platform replaces the URL in place.
func (r *passportRepo) UpsertSocialLink(ctx context.Context, link *domain.SocialLink) (*domain.SocialLink, error) {
	query := `INSERT INTO social_links (id, user_id, platform, url, created_at)
	          VALUES ($1, $2, $3, $4, NOW())
	          ON CONFLICT (user_id, platform) DO UPDATE SET url = EXCLUDED.url
	          RETURNING id, user_id, platform, url, created_at`

	var saved domain.SocialLink
	err := r.db.QueryRow(ctx, query, uuid.NewString(), link.UserID, link.Platform, link.URL).Scan(
		&saved.ID, &saved.UserID, &saved.Platform, &saved.URL, &saved.CreatedAt,
	)
	if err != nil {
		return nil, translateErr(err, "social link")
	}
	return &saved, nil
}

func (r *passportRepo) DeleteSocialLink(ctx context.Context, userID, linkID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM social_links WHERE id = $1 AND user_id = $2`, linkID, userID)
	if err != nil {
		return translateErr(err, "social link")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
