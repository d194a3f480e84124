package domain

import (
	"context"
	"time"
)

// Append-only audit rows. Written as side effects of login/signup and
// project navigation; read back only by the dev dashboard.

type AuthEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	EventType  string    `json:"event_type"` // "login" or "signup"
	SourceSlug string    `json:"source_slug"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProjectClick struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	ProjectTitle string    `json:"project_title"`
	SourceSlug   string    `json:"source_slug"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuthSummary struct {
	TotalSignups int64 `json:"total_signups"`
	TotalLogins  int64 `json:"total_logins"`
}

type ClickSummary struct {
	TotalClicks int64 `json:"total_clicks"`
}

type TopProject struct {
	ProjectTitle string `json:"project_title"`
	ClickCount   int64  `json:"click_count"`
}

type SignupSource struct {
	SourceSlug string `json:"source_slug"`
	Count      int64  `json:"count"`
}

// AnalyticsOverview is the joint result of the dashboard fetches.
type AnalyticsOverview struct {
	Summary struct {
		AuthSummary
		ClickSummary
	} `json:"summary"`
	TopProjects   []TopProject   `json:"top_projects"`
	SignupSources []SignupSource `json:"signup_sources"`
	RecentAuth    []AuthEvent    `json:"recent_auth_events"`
	RecentClicks  []ProjectClick `json:"recent_clicks"`
}

type AnalyticsRepository interface {
	RecordAuthEvent(ctx context.Context, event *AuthEvent) error
	RecordClick(ctx context.Context, click *ProjectClick) error
	// Aggregates call the named SQL functions owned by the remote store.
	GetAuthSummary(ctx context.Context) (*AuthSummary, error)
	GetClickSummary(ctx context.Context) (*ClickSummary, error)
	GetTopClickedProjects(ctx context.Context) ([]TopProject, error)
	GetCommonSignupSources(ctx context.Context) ([]SignupSource, error)
	RecentAuthEvents(ctx context.Context, limit int) ([]AuthEvent, error)
	RecentClicks(ctx context.Context, limit int) ([]ProjectClick, error)
}

type AnalyticsUsecase interface {
	Overview(ctx context.Context) (*AnalyticsOverview, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	RecordClick(ctx context.Context, click *ProjectClick) error
}
