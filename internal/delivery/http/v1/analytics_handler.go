package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"theaifactory-backend/internal/delivery/http/response"
	"theaifactory-backend/internal/domain"
)

// AnalyticsHandler serves the developer-only diagnostic dashboard. Not
// wired in production deployments.
type AnalyticsHandler struct {
	analyticsUC domain.AnalyticsUsecase
}

func NewAnalyticsHandler(dev *gin.RouterGroup, analyticsUC domain.AnalyticsUsecase) {
	handler := &AnalyticsHandler{analyticsUC: analyticsUC}

	dev.GET("/analytics", handler.Overview)
	dev.GET("/analytics/export", handler.ExportCSV)
}

// Overview godoc
// @Summary      Analytics overview
// @Description  Summary counts, top clicked projects, signup sources and recent activity
// @Tags         dev
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /dev/analytics [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsUC.Overview(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Analytics overview", overview)
}

// ExportCSV streams the recent activity feeds as a CSV download.
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	data, err := h.analyticsUC.ExportCSV(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("analytics-export-%s.csv", time.Now().UTC().Format(time.RFC3339))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
