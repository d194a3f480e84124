package domain

import (
	"context"
	"errors"
	"time"
)

// ErrProjectNotFound marks an empty single-row lookup. Handlers treat it
// as a distinct terminal state, not as a remote failure.
var ErrProjectNotFound = errors.New("project not found")

// Categories is the fixed set an uploaded project must belong to.
var Categories = []string{
	"Image AI",
	"Analytics",
	"NLP",
	"Code Generation",
	"Audio AI",
	"Video AI",
	"Other",
}

type Project struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Slug             string    `json:"slug"` // unique, ^[a-z0-9-]+$
	Category         string    `json:"category"`
	ImageURL         string    `json:"image_url,omitempty"`
	VideoURL         string    `json:"video_url,omitempty"`
	DocumentationURL string    `json:"documentation_url,omitempty"`
	GithubURL        string    `json:"github_url,omitempty"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProjectList is a listing snapshot: all rows newest-first plus the
// distinct category set (with the synthetic "All" entry) derived from it.
type ProjectList struct {
	Projects   []Project `json:"projects"`
	Categories []string  `json:"categories"`
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	FetchAll(ctx context.Context) ([]Project, error)
}

type ProjectUsecase interface {
	// List fetches all projects and applies the category filter in memory.
	// "All" (or empty) is the identity filter.
	List(ctx context.Context, category string) (*ProjectList, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	Create(ctx context.Context, project *Project) error
}
