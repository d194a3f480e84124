package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"theaifactory-backend/internal/delivery/http/response"
	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/apperror"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/signup", handler.Signup)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.POST("/refresh-role", handler.RefreshRole)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// SourceSlug records where the user came from ("from" parameter of
	// the login page); defaults to direct_login.
	SourceSlug string `json:"source_slug"`
}

type SignupRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	SourceSlug string `json:"source_slug"`
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password via the hosted auth provider
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.authUC.SignIn(c.Request.Context(), req.Email, req.Password, req.SourceSlug)
	if err != nil {
		c.Error(err)
		return
	}

	// Fresh lookup so a role granted since the last login is picked up.
	role := h.authUC.RefreshRole(c.Request.Context(), session.User.ID)

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"session":  session,
		"role":     role,
		"is_admin": role == domain.RoleAdmin,
	})
}

// Signup godoc
// @Summary      User Registration
// @Description  Register a new account with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signup  body      SignupRequest  true  "Registration Details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.authUC.SignUp(c.Request.Context(), req.Email, req.Password, req.SourceSlug)
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Registration successful"
	if session.AccessToken == "" {
		// Email confirmation pending; no session yet.
		msg = "Registration successful. Please check your email to confirm."
	}

	response.Success(c, http.StatusCreated, msg, gin.H{"session": session})
}

// Logout godoc
// @Summary      Sign Out
// @Description  Revoke the current session at the auth provider
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.authUC.SignOut(c.Request.Context(), token); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Signed out", nil)
}

// Me godoc
// @Summary      Current identity
// @Description  Returns the authenticated user and its resolved role
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	response.Success(c, http.StatusOK, "User details", gin.H{
		"user": domain.User{
			ID:    c.GetString(string(domain.KeyUserID)),
			Email: c.GetString(string(domain.KeyUserEmail)),
		},
		"role":     role,
		"is_admin": role == string(domain.RoleAdmin),
	})
}

// RefreshRole re-executes the role lookup on demand, bypassing the cache.
func (h *AuthHandler) RefreshRole(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := h.authUC.RefreshRole(c.Request.Context(), userID)
	response.Success(c, http.StatusOK, "Role refreshed", gin.H{
		"role":     role,
		"is_admin": role == domain.RoleAdmin,
	})
}
