package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/apperror"
	"theaifactory-backend/pkg/validation"
)

type projectUsecase struct {
	projectRepo domain.ProjectRepository
	validate    *validator.Validate
}

func NewProjectUsecase(projectRepo domain.ProjectRepository, validate *validator.Validate) domain.ProjectUsecase {
	return &projectUsecase{
		projectRepo: projectRepo,
		validate:    validate,
	}
}

// List fetches every project newest-first and filters in memory. The
// category set is derived from the full result, not the filtered one, so
// the filter controls stay stable while narrowing.
func (u *projectUsecase) List(ctx context.Context, category string) (*domain.ProjectList, error) {
	projects, err := u.projectRepo.FetchAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	categories := deriveCategories(projects)

	if category != "" && category != "All" {
		filtered := make([]domain.Project, 0, len(projects))
		for _, p := range projects {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	return &domain.ProjectList{Projects: projects, Categories: categories}, nil
}

func (u *projectUsecase) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	project, err := u.projectRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, apperror.Internal(err)
	}
	return project, nil
}

// createProjectInput mirrors the upload form's structural rules. Checked
// before any store call; violations never reach the network.
type createProjectInput struct {
	Title            string `validate:"required,min=3"`
	Slug             string `validate:"required,min=3,slug"`
	Description      string `validate:"required,min=10"`
	Category         string `validate:"required,project_category"`
	ImageURL         string `validate:"omitempty,url"`
	VideoURL         string `validate:"omitempty,url"`
	DocumentationURL string `validate:"omitempty,url"`
	GithubURL        string `validate:"omitempty,url"`
}

func (u *projectUsecase) Create(ctx context.Context, project *domain.Project) error {
	// Admin only; the route middleware checks this too, but the usecase
	// must not trust its callers.
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if role != string(domain.RoleAdmin) {
		return apperror.Forbidden("Only admins can upload projects")
	}

	input := createProjectInput{
		Title:            strings.TrimSpace(project.Title),
		Slug:             project.Slug,
		Description:      strings.TrimSpace(project.Description),
		Category:         project.Category,
		ImageURL:         project.ImageURL,
		VideoURL:         project.VideoURL,
		DocumentationURL: project.DocumentationURL,
		GithubURL:        project.GithubURL,
	}
	if err := u.validate.Struct(input); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return apperror.BadRequest(strings.Join(msgs, "; "))
	}

	// Uploader is always the authenticated admin, never client input.
	if userID, ok := ctx.Value(domain.KeyUserID).(string); ok {
		project.CreatedBy = userID
	}
	project.CreatedAt = time.Now()

	return u.projectRepo.Create(ctx, project)
}

func deriveCategories(projects []domain.Project) []string {
	categories := []string{"All"}
	seen := map[string]bool{}
	for _, p := range projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}
