package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"golang.org/x/sync/errgroup"

	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/apperror"
)

// recentLimit bounds the recent-activity feeds on the dashboard.
const recentLimit = 10

type analyticsUsecase struct {
	analyticsRepo domain.AnalyticsRepository
}

func NewAnalyticsUsecase(analyticsRepo domain.AnalyticsRepository) domain.AnalyticsUsecase {
	return &analyticsUsecase{analyticsRepo: analyticsRepo}
}

// Overview issues the dashboard fetches concurrently and awaits them
// jointly. A failure in any one fails the whole batch.
func (u *analyticsUsecase) Overview(ctx context.Context) (*domain.AnalyticsOverview, error) {
	var overview domain.AnalyticsOverview

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := u.analyticsRepo.GetAuthSummary(ctx)
		if err != nil {
			return err
		}
		overview.Summary.AuthSummary = *s
		return nil
	})
	g.Go(func() error {
		s, err := u.analyticsRepo.GetClickSummary(ctx)
		if err != nil {
			return err
		}
		overview.Summary.ClickSummary = *s
		return nil
	})
	g.Go(func() error {
		top, err := u.analyticsRepo.GetTopClickedProjects(ctx)
		if err != nil {
			return err
		}
		overview.TopProjects = top
		return nil
	})
	g.Go(func() error {
		sources, err := u.analyticsRepo.GetCommonSignupSources(ctx)
		if err != nil {
			return err
		}
		overview.SignupSources = sources
		return nil
	})
	g.Go(func() error {
		events, err := u.analyticsRepo.RecentAuthEvents(ctx, recentLimit)
		if err != nil {
			return err
		}
		overview.RecentAuth = events
		return nil
	})
	g.Go(func() error {
		clicks, err := u.analyticsRepo.RecentClicks(ctx, recentLimit)
		if err != nil {
			return err
		}
		overview.RecentClicks = clicks
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}
	return &overview, nil
}

// ExportCSV renders the recent activity feeds as a single CSV document.
func (u *analyticsUsecase) ExportCSV(ctx context.Context) ([]byte, error) {
	var (
		events []domain.AuthEvent
		clicks []domain.ProjectClick
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = u.analyticsRepo.RecentAuthEvents(ctx, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		clicks, err = u.analyticsRepo.RecentClicks(ctx, recentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"Type", "Event Type", "Project", "Email", "Source", "Timestamp"})
	for _, e := range events {
		_ = w.Write([]string{"auth", e.EventType, "", e.Email, e.SourceSlug, e.CreatedAt.Format(time.RFC3339)})
	}
	for _, c := range clicks {
		_ = w.Write([]string{"click", "", c.ProjectTitle, c.UserEmail, c.SourceSlug, c.CreatedAt.Format(time.RFC3339)})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperror.Internal(err)
	}
	return buf.Bytes(), nil
}

func (u *analyticsUsecase) RecordClick(ctx context.Context, click *domain.ProjectClick) error {
	return u.analyticsRepo.RecordClick(ctx, click)
}
