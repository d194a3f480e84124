package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"theaifactory-backend/internal/delivery/http/response"
	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/apperror"
)

type AdminHandler struct {
	projectUC domain.ProjectUsecase
}

func NewAdminHandler(admin *gin.RouterGroup, projectUC domain.ProjectUsecase) {
	handler := &AdminHandler{projectUC: projectUC}

	admin.POST("/projects", handler.UploadProject)
}

type UploadProjectRequest struct {
	Title            string `json:"title" binding:"required"`
	Slug             string `json:"slug" binding:"required"`
	Description      string `json:"description" binding:"required"`
	Category         string `json:"category" binding:"required"`
	ImageURL         string `json:"image_url"`
	VideoURL         string `json:"video_url"`
	DocumentationURL string `json:"documentation_url"`
	GithubURL        string `json:"github_url"`
}

// UploadProject godoc
// @Summary      Upload a project
// @Description  Create a new showcase project (admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        project  body      UploadProjectRequest  true  "Project JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /admin/projects [post]
// @Security     BearerAuth
func (h *AdminHandler) UploadProject(c *gin.Context) {
	var req UploadProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	project := &domain.Project{
		Title:            req.Title,
		Slug:             req.Slug,
		Description:      req.Description,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		VideoURL:         req.VideoURL,
		DocumentationURL: req.DocumentationURL,
		GithubURL:        req.GithubURL,
	}

	if err := h.projectUC.Create(c.Request.Context(), project); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Project uploaded successfully", project)
}
