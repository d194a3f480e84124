package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"theaifactory-backend/config"
	"theaifactory-backend/internal/delivery/http/response"
	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/auth"
)

// AuthMiddleware verifies the Supabase-issued token and attaches the
// identity plus looked-up role to the request context. Requests without a
// valid token are rejected.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := verifyToken(tokenString, jwksProvider, cfg)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		attachIdentity(c, claims, authUC)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is
// present and lets the request through anonymously otherwise. Used where
// a view renders differently for signed-in users but is reachable by all.
func OptionalAuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := verifyToken(tokenString, jwksProvider, cfg); err == nil {
				attachIdentity(c, claims, authUC)
			}
			// An invalid token degrades to anonymous rather than failing.
		}
		c.Next()
	}
}

// RequireAdmin gates a route group on the admin role. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		if role != string(domain.RoleAdmin) {
			response.Error(c, http.StatusForbidden, "Admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

func verifyToken(tokenString string, jwksProvider *auth.Provider, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
			// HS256 - legacy Supabase signing secret
			if cfg.SupabaseJWTSecret == "" {
				return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}

		if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
			// RS256 - resolved through JWKS
			return jwksProvider.KeyFunc(token)
		}

		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	return claims, nil
}

func attachIdentity(c *gin.Context, claims jwt.MapClaims, authUC domain.AuthUsecase) {
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)

	// The role comes from the user_roles lookup, never from the token:
	// Supabase role claims carry "authenticated", not our authorization
	// level. Lookup failures degrade to the plain user role.
	role := authUC.GetRole(c.Request.Context(), sub)

	c.Set(string(domain.KeyUserID), sub)
	c.Set(string(domain.KeyUserEmail), email)
	c.Set(string(domain.KeyUserRole), string(role))

	// Usecases read the identity off the request context, so mirror it
	// there as well.
	ctx := c.Request.Context()
	ctx = context.WithValue(ctx, domain.KeyUserID, sub)
	ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
	ctx = context.WithValue(ctx, domain.KeyUserRole, string(role))
	c.Request = c.Request.WithContext(ctx)
}
