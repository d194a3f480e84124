package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/apperror"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type projectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	query := `INSERT INTO projects
              (title, description, slug, category, image_url, video_url, documentation_url, github_url, created_by, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
              RETURNING id`
	err := r.db.QueryRow(ctx, query,
		project.Title, project.Description, project.Slug, project.Category,
		nullable(project.ImageURL), nullable(project.VideoURL),
		nullable(project.DocumentationURL), nullable(project.GithubURL),
		project.CreatedBy, project.CreatedAt,
	).Scan(&project.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("A project with this slug already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	query := `SELECT id, title, description, slug, category,
                     COALESCE(image_url, ''), COALESCE(video_url, ''),
                     COALESCE(documentation_url, ''), COALESCE(github_url, ''),
                     COALESCE(created_by, ''), created_at
              FROM projects WHERE slug = $1`
	var p domain.Project
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.Title, &p.Description, &p.Slug, &p.Category,
		&p.ImageURL, &p.VideoURL, &p.DocumentationURL, &p.GithubURL,
		&p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		// Absence is a distinct state, not a remote failure.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) FetchAll(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT id, title, description, slug, category,
                     COALESCE(image_url, ''), COALESCE(video_url, ''),
                     COALESCE(documentation_url, ''), COALESCE(github_url, ''),
                     COALESCE(created_by, ''), created_at
              FROM projects ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Slug, &p.Category,
			&p.ImageURL, &p.VideoURL, &p.DocumentationURL, &p.GithubURL,
			&p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// nullable converts an empty string to a NULL parameter so optional URL
// columns stay NULL instead of storing empty strings.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
