package domain

import "context"

// Role is the coarse authorization level looked up from the user_roles
// table, not taken from the auth token itself.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID    string `json:"id"` // Supabase UUID
	Email string `json:"email"`
}

// Session is the identity handle returned by the auth provider after
// sign-in/sign-up. Its lifetime is bounded by the provider's token expiry.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	User         User   `json:"user"`
}

// RoleRepository reads the user_roles table.
type RoleRepository interface {
	GetByUserID(ctx context.Context, userID string) (Role, error)
}

// AuthGateway is the boundary to the hosted auth provider (GoTrue).
// Token issuance and validation stay on the provider side.
type AuthGateway interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type AuthUsecase interface {
	SignUp(ctx context.Context, email, password, sourceSlug string) (*Session, error)
	SignIn(ctx context.Context, email, password, sourceSlug string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	// GetRole never fails: any lookup error degrades to RoleUser.
	GetRole(ctx context.Context, userID string) Role
	// RefreshRole bypasses the cache; concurrent refreshes for the same
	// user share one in-flight lookup.
	RefreshRole(ctx context.Context, userID string) Role
}
