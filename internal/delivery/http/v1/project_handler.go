package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"theaifactory-backend/internal/delivery/http/response"
	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/logger"
	"theaifactory-backend/pkg/video"
)

type ProjectHandler struct {
	projectUC   domain.ProjectUsecase
	analyticsUC domain.AnalyticsUsecase
}

func NewProjectHandler(public *gin.RouterGroup, optionalAuth *gin.RouterGroup, projectUC domain.ProjectUsecase, analyticsUC domain.AnalyticsUsecase) {
	handler := &ProjectHandler{projectUC: projectUC, analyticsUC: analyticsUC}

	public.GET("/projects", handler.List)
	// Detail is reachable anonymously but renders gated content only for
	// authenticated users, so it sits behind the optional-auth group.
	optionalAuth.GET("/projects/:slug", handler.GetBySlug)
}

// List godoc
// @Summary      List projects
// @Description  All projects newest-first with the derived category set; optional exact-match category filter
// @Tags         projects
// @Produce      json
// @Param        category  query     string  false  "Category filter; 'All' or absent returns everything"
// @Success      200  {object}  response.Response
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.projectUC.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Projects", list)
}

// GetBySlug resolves a project by slug and gates its visibility on
// authentication. Four terminal outcomes, mirrored as statuses:
// 500 lookup error, 404 no such slug, 401 row exists but no session,
// 200 full content.
//
// @Summary      Project detail
// @Tags         projects
// @Produce      json
// @Param        slug  path  string  true  "Project slug"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{slug} [get]
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	project, err := h.projectUC.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}

	// The row exists; authentication decides how much of it renders.
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "Please log in or sign up to view this project's details.", gin.H{
			"actions": []string{"login", "signup"},
		})
		return
	}

	h.recordClick(c, project, userID)

	payload := gin.H{"project": project}
	if project.VideoURL != "" {
		if embed := video.YouTubeEmbedURL(project.VideoURL); embed != "" {
			payload["embed_url"] = embed
		}
	}
	response.Success(c, http.StatusOK, "Project details", payload)
}

// recordClick appends the navigation audit row. Best-effort: the detail
// view never fails because analytics did.
func (h *ProjectHandler) recordClick(c *gin.Context, project *domain.Project, userID string) {
	click := &domain.ProjectClick{
		UserID:       userID,
		UserEmail:    c.GetString(string(domain.KeyUserEmail)),
		ProjectTitle: project.Title,
		SourceSlug:   project.Slug,
	}
	if err := h.analyticsUC.RecordClick(c.Request.Context(), click); err != nil {
		logger.Log.Warn("failed to record project click", "slug", project.Slug, "error", err)
	}
}
