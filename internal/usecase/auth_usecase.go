package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/logger"
)

// roleCacheTTL keeps the per-request role lookups off the user_roles
// table without letting revocations linger for long.
const roleCacheTTL = 30 * time.Second

type cachedRole struct {
	role      domain.Role
	expiresAt time.Time
}

type authUsecase struct {
	gateway   domain.AuthGateway
	roleRepo  domain.RoleRepository
	analytics domain.AnalyticsRepository

	// Concurrent lookups for one user share a single in-flight query.
	flight singleflight.Group
	mu     sync.RWMutex
	cache  map[string]cachedRole
}

func NewAuthUsecase(gateway domain.AuthGateway, roleRepo domain.RoleRepository, analytics domain.AnalyticsRepository) domain.AuthUsecase {
	return &authUsecase{
		gateway:   gateway,
		roleRepo:  roleRepo,
		analytics: analytics,
		cache:     make(map[string]cachedRole),
	}
}

func (u *authUsecase) SignIn(ctx context.Context, email, password, sourceSlug string) (*domain.Session, error) {
	session, err := u.gateway.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	u.recordAuthEvent(ctx, session.User, "login", sourceSlug)
	return session, nil
}

func (u *authUsecase) SignUp(ctx context.Context, email, password, sourceSlug string) (*domain.Session, error) {
	session, err := u.gateway.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	u.recordAuthEvent(ctx, session.User, "signup", sourceSlug)
	return session, nil
}

func (u *authUsecase) SignOut(ctx context.Context, accessToken string) error {
	return u.gateway.SignOut(ctx, accessToken)
}

// GetRole resolves the authorization level for a user. Any failure, a
// missing row included, degrades to RoleUser instead of surfacing: the
// catalog stays available and admin surfaces stay hidden.
func (u *authUsecase) GetRole(ctx context.Context, userID string) domain.Role {
	if userID == "" {
		return domain.RoleUser
	}

	u.mu.RLock()
	cached, ok := u.cache[userID]
	u.mu.RUnlock()
	if ok && time.Now().Before(cached.expiresAt) {
		return cached.role
	}

	return u.lookupRole(ctx, userID)
}

// RefreshRole drops the cached value and re-executes the lookup.
func (u *authUsecase) RefreshRole(ctx context.Context, userID string) domain.Role {
	if userID == "" {
		return domain.RoleUser
	}

	u.mu.Lock()
	delete(u.cache, userID)
	u.mu.Unlock()

	return u.lookupRole(ctx, userID)
}

func (u *authUsecase) lookupRole(ctx context.Context, userID string) domain.Role {
	v, err, _ := u.flight.Do(userID, func() (interface{}, error) {
		role, err := u.roleRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return role, nil
	})
	if err != nil {
		logger.Log.Warn("role lookup failed, defaulting to user", "user_id", userID, "error", err)
		return domain.RoleUser
	}

	role := v.(domain.Role)
	if role != domain.RoleAdmin {
		// Unknown role strings count as plain users.
		role = domain.RoleUser
	}

	u.mu.Lock()
	u.cache[userID] = cachedRole{role: role, expiresAt: time.Now().Add(roleCacheTTL)}
	u.mu.Unlock()

	return role
}

// recordAuthEvent writes the append-only audit row. Best-effort: a failed
// insert must never fail the login or signup it annotates.
func (u *authUsecase) recordAuthEvent(ctx context.Context, user domain.User, eventType, sourceSlug string) {
	if user.ID == "" {
		return
	}
	if sourceSlug == "" {
		sourceSlug = "direct_" + eventType
	}

	event := &domain.AuthEvent{
		UserID:     user.ID,
		Email:      user.Email,
		EventType:  eventType,
		SourceSlug: sourceSlug,
	}
	if err := u.analytics.RecordAuthEvent(ctx, event); err != nil {
		logger.Log.Warn("failed to record auth event", "event_type", eventType, "error", err)
	}
}
