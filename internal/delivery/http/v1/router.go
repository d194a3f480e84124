package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"theaifactory-backend/config"
	"theaifactory-backend/internal/delivery/http/middleware"
	"theaifactory-backend/internal/delivery/http/response"
	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/auth"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	ProjectUC    domain.ProjectUsecase
	AnalyticsUC  domain.AnalyticsUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Credential endpoints carry a stricter per-IP limit.
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(
		middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))

	// Detail pages are readable by anyone but render gated content only
	// with a session attached.
	optionalAuth := v1.Group("")
	optionalAuth.Use(middleware.OptionalAuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	NewAuthHandler(public, protected, deps.AuthUC)
	NewProjectHandler(v1, optionalAuth, deps.ProjectUC, deps.AnalyticsUC)
	NewAdminHandler(admin, deps.ProjectUC)

	// Developer-only diagnostics, gated twice: env flag and admin role.
	if deps.Config.EnableDevRoutes {
		dev := protected.Group("/dev")
		dev.Use(middleware.RequireAdmin())
		NewAnalyticsHandler(dev, deps.AnalyticsUC)
	}

	// Catch-all 404 as JSON, matching the SPA's not-found page.
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	return r
}
