package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"theaifactory-backend/internal/domain"
	"theaifactory-backend/internal/usecase"
	"theaifactory-backend/pkg/apperror"
	"theaifactory-backend/pkg/logger"
	"theaifactory-backend/pkg/validation"
)

// Mock Repositories

type MockRoleRepo struct {
	mock.Mock
}

func (m *MockRoleRepo) GetByUserID(ctx context.Context, userID string) (domain.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Role), args.Error(1)
}

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepo) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepo) FetchAll(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) RecordAuthEvent(ctx context.Context, event *domain.AuthEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockAnalyticsRepo) RecordClick(ctx context.Context, click *domain.ProjectClick) error {
	return m.Called(ctx, click).Error(0)
}

func (m *MockAnalyticsRepo) GetAuthSummary(ctx context.Context) (*domain.AuthSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthSummary), args.Error(1)
}

func (m *MockAnalyticsRepo) GetClickSummary(ctx context.Context) (*domain.ClickSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClickSummary), args.Error(1)
}

func (m *MockAnalyticsRepo) GetTopClickedProjects(ctx context.Context) ([]domain.TopProject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopProject), args.Error(1)
}

func (m *MockAnalyticsRepo) GetCommonSignupSources(ctx context.Context) ([]domain.SignupSource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SignupSource), args.Error(1)
}

func (m *MockAnalyticsRepo) RecentAuthEvents(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthEvent), args.Error(1)
}

func (m *MockAnalyticsRepo) RecentClicks(ctx context.Context, limit int) ([]domain.ProjectClick, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectClick), args.Error(1)
}

type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthGateway) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthGateway) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func init() {
	// The auth usecase logs fallbacks; tests need the logger initialized.
	logger.Init()
}

func TestRoleLookupDefaults(t *testing.T) {
	t.Run("lookup error defaults to user role", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		roleRepo.On("GetByUserID", mock.Anything, "new-user").
			Return(domain.Role(""), errors.New("no rows in result set"))

		role := uc.GetRole(context.Background(), "new-user")
		assert.Equal(t, domain.RoleUser, role)
	})

	t.Run("unknown role string degrades to user", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		roleRepo.On("GetByUserID", mock.Anything, "u1").
			Return(domain.Role("superuser"), nil)

		assert.Equal(t, domain.RoleUser, uc.GetRole(context.Background(), "u1"))
	})

	t.Run("admin role resolves and is cached", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		roleRepo.On("GetByUserID", mock.Anything, "admin-1").
			Return(domain.RoleAdmin, nil).Once()

		assert.Equal(t, domain.RoleAdmin, uc.GetRole(context.Background(), "admin-1"))
		// Second call served from cache; the mock would panic on a second hit.
		assert.Equal(t, domain.RoleAdmin, uc.GetRole(context.Background(), "admin-1"))
		roleRepo.AssertNumberOfCalls(t, "GetByUserID", 1)
	})

	t.Run("refresh bypasses the cache", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		roleRepo.On("GetByUserID", mock.Anything, "u2").
			Return(domain.RoleAdmin, nil).Once()
		roleRepo.On("GetByUserID", mock.Anything, "u2").
			Return(domain.Role(""), errors.New("connection reset")).Once()

		assert.Equal(t, domain.RoleAdmin, uc.GetRole(context.Background(), "u2"))
		// Role revoked upstream; refresh re-queries and degrades on error.
		assert.Equal(t, domain.RoleUser, uc.RefreshRole(context.Background(), "u2"))
	})

	t.Run("empty user id is a plain user", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		assert.Equal(t, domain.RoleUser, uc.GetRole(context.Background(), ""))
		roleRepo.AssertNotCalled(t, "GetByUserID")
	})
}

func TestSignInRecordsAuthEvent(t *testing.T) {
	session := &domain.Session{
		AccessToken: "tok",
		User:        domain.User{ID: "u1", Email: "a@b.c"},
	}

	t.Run("login event carries the source slug", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		gateway.On("SignIn", mock.Anything, "a@b.c", "secret").Return(session, nil)
		analytics.On("RecordAuthEvent", mock.Anything, mock.AnythingOfType("*domain.AuthEvent")).
			Return(nil).Run(func(args mock.Arguments) {
			event := args.Get(1).(*domain.AuthEvent)
			assert.Equal(t, "login", event.EventType)
			assert.Equal(t, "smart-dashboard", event.SourceSlug)
		})

		got, err := uc.SignIn(context.Background(), "a@b.c", "secret", "smart-dashboard")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		analytics.AssertExpectations(t)
	})

	t.Run("audit failure never fails the login", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		gateway.On("SignIn", mock.Anything, "a@b.c", "secret").Return(session, nil)
		analytics.On("RecordAuthEvent", mock.Anything, mock.Anything).
			Return(errors.New("insert failed"))

		got, err := uc.SignIn(context.Background(), "a@b.c", "secret", "")
		assert.NoError(t, err)
		assert.Equal(t, "tok", got.AccessToken)
	})

	t.Run("gateway failure propagates and records nothing", func(t *testing.T) {
		gateway := new(MockAuthGateway)
		roleRepo := new(MockRoleRepo)
		analytics := new(MockAnalyticsRepo)
		uc := usecase.NewAuthUsecase(gateway, roleRepo, analytics)

		gateway.On("SignIn", mock.Anything, "a@b.c", "wrong").
			Return(nil, apperror.Unauthorized("Wrong password or account not found"))

		_, err := uc.SignIn(context.Background(), "a@b.c", "wrong", "")
		assert.Error(t, err)
		analytics.AssertNotCalled(t, "RecordAuthEvent")
	})
}

func sampleProjects() []domain.Project {
	return []domain.Project{
		{Title: "Speech Analytics Platform", Slug: "speech-analytics", Category: "NLP"},
		{Title: "Computer Vision Toolkit", Slug: "computer-vision-toolkit", Category: "Image AI"},
		{Title: "ChatBot Interface", Slug: "chatbot-interface", Category: "NLP"},
		{Title: "AI Image Generator", Slug: "ai-image-generator", Category: "Image AI"},
	}
}

func newProjectUsecase(repo *MockProjectRepo) domain.ProjectUsecase {
	validate := validator.New()
	validation.RegisterValidators(validate)
	return usecase.NewProjectUsecase(repo, validate)
}

func TestProjectListFilter(t *testing.T) {
	t.Run("category filter yields the exact matching subset", func(t *testing.T) {
		repo := new(MockProjectRepo)
		repo.On("FetchAll", mock.Anything).Return(sampleProjects(), nil)
		uc := newProjectUsecase(repo)

		list, err := uc.List(context.Background(), "NLP")
		assert.NoError(t, err)
		assert.Len(t, list.Projects, 2)
		for _, p := range list.Projects {
			assert.Equal(t, "NLP", p.Category)
		}
	})

	t.Run("All filter is the identity", func(t *testing.T) {
		repo := new(MockProjectRepo)
		repo.On("FetchAll", mock.Anything).Return(sampleProjects(), nil)
		uc := newProjectUsecase(repo)

		list, err := uc.List(context.Background(), "All")
		assert.NoError(t, err)
		assert.Equal(t, sampleProjects(), list.Projects)
	})

	t.Run("categories derive from the full set with synthetic All", func(t *testing.T) {
		repo := new(MockProjectRepo)
		repo.On("FetchAll", mock.Anything).Return(sampleProjects(), nil)
		uc := newProjectUsecase(repo)

		list, err := uc.List(context.Background(), "Image AI")
		assert.NoError(t, err)
		assert.Equal(t, []string{"All", "NLP", "Image AI"}, list.Categories)
	})

	t.Run("no match yields empty list, full category set", func(t *testing.T) {
		repo := new(MockProjectRepo)
		repo.On("FetchAll", mock.Anything).Return(sampleProjects(), nil)
		uc := newProjectUsecase(repo)

		list, err := uc.List(context.Background(), "Audio AI")
		assert.NoError(t, err)
		assert.Empty(t, list.Projects)
		assert.Contains(t, list.Categories, "All")
	})
}

func TestProjectGetBySlug(t *testing.T) {
	t.Run("missing slug maps to 404, not 500", func(t *testing.T) {
		repo := new(MockProjectRepo)
		repo.On("GetBySlug", mock.Anything, "no-such-slug").
			Return(nil, domain.ErrProjectNotFound)
		uc := newProjectUsecase(repo)

		_, err := uc.GetBySlug(context.Background(), "no-such-slug")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("remote failure maps to 500", func(t *testing.T) {
		repo := new(MockProjectRepo)
		repo.On("GetBySlug", mock.Anything, "ai-image-generator").
			Return(nil, errors.New("connection refused"))
		uc := newProjectUsecase(repo)

		_, err := uc.GetBySlug(context.Background(), "ai-image-generator")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Code)
	})
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, "admin-1")
	return context.WithValue(ctx, domain.KeyUserRole, string(domain.RoleAdmin))
}

func TestAdminUpload(t *testing.T) {
	valid := func() *domain.Project {
		return &domain.Project{
			Title:       "Smart Dashboard",
			Slug:        "smart-dashboard",
			Description: "Data visualization dashboard with real-time updates",
			Category:    "Analytics",
			ImageURL:    "https://images.example.com/dashboard.jpg",
		}
	}

	t.Run("non-admin is forbidden before any store call", func(t *testing.T) {
		repo := new(MockProjectRepo)
		uc := newProjectUsecase(repo)

		ctx := context.WithValue(context.Background(), domain.KeyUserRole, string(domain.RoleUser))
		err := uc.Create(ctx, valid())
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("malformed image URL blocks submission with field message", func(t *testing.T) {
		repo := new(MockProjectRepo)
		uc := newProjectUsecase(repo)

		project := valid()
		project.ImageURL = "not a url"
		err := uc.Create(adminCtx(), project)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cover Image URL")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("invalid slug blocks submission", func(t *testing.T) {
		repo := new(MockProjectRepo)
		uc := newProjectUsecase(repo)

		project := valid()
		project.Slug = "AI Image"
		err := uc.Create(adminCtx(), project)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("valid project is stamped and stored", func(t *testing.T) {
		repo := new(MockProjectRepo)
		uc := newProjectUsecase(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).
			Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Project)
			assert.Equal(t, "admin-1", p.CreatedBy)
			assert.False(t, p.CreatedAt.IsZero())
		})

		assert.NoError(t, uc.Create(adminCtx(), valid()))
		repo.AssertExpectations(t)
	})
}

func TestAnalyticsOverview(t *testing.T) {
	setupHappy := func(repo *MockAnalyticsRepo) {
		repo.On("GetAuthSummary", mock.Anything).
			Return(&domain.AuthSummary{TotalSignups: 12, TotalLogins: 80}, nil)
		repo.On("GetClickSummary", mock.Anything).
			Return(&domain.ClickSummary{TotalClicks: 230}, nil)
		repo.On("GetTopClickedProjects", mock.Anything).
			Return([]domain.TopProject{{ProjectTitle: "Smart Dashboard", ClickCount: 42}}, nil)
		repo.On("GetCommonSignupSources", mock.Anything).
			Return([]domain.SignupSource{{SourceSlug: "smart-dashboard", Count: 7}}, nil)
		repo.On("RecentAuthEvents", mock.Anything, 10).
			Return([]domain.AuthEvent{{Email: "a@b.c", EventType: "login"}}, nil)
		repo.On("RecentClicks", mock.Anything, 10).
			Return([]domain.ProjectClick{{ProjectTitle: "Smart Dashboard"}}, nil)
	}

	t.Run("joins all fetches into one overview", func(t *testing.T) {
		repo := new(MockAnalyticsRepo)
		setupHappy(repo)
		uc := usecase.NewAnalyticsUsecase(repo)

		overview, err := uc.Overview(context.Background())
		assert.NoError(t, err)
		assert.EqualValues(t, 12, overview.Summary.TotalSignups)
		assert.EqualValues(t, 230, overview.Summary.TotalClicks)
		assert.Len(t, overview.TopProjects, 1)
		assert.Len(t, overview.RecentAuth, 1)
	})

	t.Run("any single failure fails the whole batch", func(t *testing.T) {
		repo := new(MockAnalyticsRepo)
		repo.On("GetAuthSummary", mock.Anything).
			Return(nil, errors.New("function get_auth_summary does not exist"))
		repo.On("GetClickSummary", mock.Anything).
			Return(&domain.ClickSummary{}, nil).Maybe()
		repo.On("GetTopClickedProjects", mock.Anything).
			Return([]domain.TopProject{}, nil).Maybe()
		repo.On("GetCommonSignupSources", mock.Anything).
			Return([]domain.SignupSource{}, nil).Maybe()
		repo.On("RecentAuthEvents", mock.Anything, 10).
			Return([]domain.AuthEvent{}, nil).Maybe()
		repo.On("RecentClicks", mock.Anything, 10).
			Return([]domain.ProjectClick{}, nil).Maybe()
		uc := usecase.NewAnalyticsUsecase(repo)

		_, err := uc.Overview(context.Background())
		assert.Error(t, err)
	})

	t.Run("CSV export combines both feeds", func(t *testing.T) {
		repo := new(MockAnalyticsRepo)
		setupHappy(repo)
		uc := usecase.NewAnalyticsUsecase(repo)

		data, err := uc.ExportCSV(context.Background())
		assert.NoError(t, err)
		csv := string(data)
		assert.Contains(t, csv, "Type,Event Type,Project,Email,Source,Timestamp")
		assert.Contains(t, csv, "a@b.c")
		assert.Contains(t, csv, "Smart Dashboard")
	})
}
