package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"theaifactory-backend/internal/domain"
)

type analyticsRepo struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) domain.AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) RecordAuthEvent(ctx context.Context, event *domain.AuthEvent) error {
	query := `INSERT INTO user_auth_events (user_id, email, event_type, source_slug)
              VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, event.UserID, event.Email, event.EventType, event.SourceSlug)
	return err
}

func (r *analyticsRepo) RecordClick(ctx context.Context, click *domain.ProjectClick) error {
	query := `INSERT INTO project_clicks (user_id, user_email, project_title, source_slug)
              VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, click.UserID, click.UserEmail, click.ProjectTitle, click.SourceSlug)
	return err
}

// The aggregate reads below call SQL functions owned by the remote store,
// the same procedures the dashboard used as RPCs.

func (r *analyticsRepo) GetAuthSummary(ctx context.Context) (*domain.AuthSummary, error) {
	var s domain.AuthSummary
	err := r.db.QueryRow(ctx, `SELECT total_signups, total_logins FROM get_auth_summary()`).
		Scan(&s.TotalSignups, &s.TotalLogins)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *analyticsRepo) GetClickSummary(ctx context.Context) (*domain.ClickSummary, error) {
	var s domain.ClickSummary
	err := r.db.QueryRow(ctx, `SELECT total_clicks FROM get_click_summary()`).
		Scan(&s.TotalClicks)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *analyticsRepo) GetTopClickedProjects(ctx context.Context) ([]domain.TopProject, error) {
	rows, err := r.db.Query(ctx, `SELECT project_title, click_count FROM get_top_clicked_projects()`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []domain.TopProject
	for rows.Next() {
		var t domain.TopProject
		if err := rows.Scan(&t.ProjectTitle, &t.ClickCount); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (r *analyticsRepo) GetCommonSignupSources(ctx context.Context) ([]domain.SignupSource, error) {
	rows, err := r.db.Query(ctx, `SELECT source_slug, count FROM get_common_signup_sources()`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []domain.SignupSource
	for rows.Next() {
		var s domain.SignupSource
		if err := rows.Scan(&s.SourceSlug, &s.Count); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

func (r *analyticsRepo) RecentAuthEvents(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	query := `SELECT id, user_id, email, event_type, source_slug, created_at
              FROM user_auth_events ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AuthEvent
	for rows.Next() {
		var e domain.AuthEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Email, &e.EventType, &e.SourceSlug, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *analyticsRepo) RecentClicks(ctx context.Context, limit int) ([]domain.ProjectClick, error) {
	query := `SELECT id, user_id, user_email, project_title, source_slug, created_at
              FROM project_clicks ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clicks []domain.ProjectClick
	for rows.Next() {
		var c domain.ProjectClick
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserEmail, &c.ProjectTitle, &c.SourceSlug, &c.CreatedAt); err != nil {
			return nil, err
		}
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}
