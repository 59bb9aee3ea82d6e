// Package service backs the admin dashboard: queue, stats, and activity feed.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"vedo/internal/audit"
	"vedo/internal/creator/models"
	"vedo/internal/creator/store"
	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

// DefaultActivityLimit caps the activity feed when the caller does not ask
// for a specific count.
const DefaultActivityLimit = 10

const maxActivityLimit = 100

// ApplicationStore is the subset of the application store the dashboard reads.
type ApplicationStore interface {
	ListPending(ctx context.Context) ([]*models.Application, error)
	Stats(ctx context.Context, monthStart time.Time) (*store.Stats, error)
}

// ActivityLog reads audit entries.
type ActivityLog interface {
	Recent(ctx context.Context, limit int) ([]*audit.Entry, error)
	ForCreator(ctx context.Context, creatorID id.CreatorID) ([]*audit.Entry, error)
}

// Service aggregates dashboard reads.
type Service struct {
	applications ApplicationStore
	activity     ActivityLog
	logger       *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(applications ApplicationStore, activity ActivityLog, opts ...Option) *Service {
	s := &Service{applications: applications, activity: activity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PendingApplications returns the review queue, newest first.
func (s *Service) PendingApplications(ctx context.Context) ([]*models.Application, error) {
	apps, err := s.applications.ListPending(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load review queue")
	}
	return apps, nil
}

// Stats returns dashboard counters. The monthly registration count covers
// the current calendar month in UTC.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats, err := s.applications.Stats(ctx, monthStart)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load stats")
	}
	return stats, nil
}

// RecentActivity returns the latest audit entries, newest first. A
// non-positive limit falls back to the default; oversized limits are capped.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]*audit.Entry, error) {
	if s.activity == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	entries, err := s.activity.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load activity")
	}
	return entries, nil
}

// ApplicationActivity returns the audit trail of one application, newest
// first. An application with no recorded actions yields an empty list.
func (s *Service) ApplicationActivity(ctx context.Context, creatorID id.CreatorID) ([]*audit.Entry, error) {
	if s.activity == nil {
		return nil, nil
	}
	entries, err := s.activity.ForCreator(ctx, creatorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load application activity")
	}
	return entries, nil
}

// Overview bundles the dashboard's landing data.
type Overview struct {
	Stats        *store.Stats
	Applications []*models.Application
	Activity     []*audit.Entry
}

// Overview loads stats, the review queue, and the latest activity
// concurrently; the three reads are independent and the dashboard renders
// them side by side.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.Stats(ctx)
		ov.Stats = stats
		return err
	})
	g.Go(func() error {
		apps, err := s.PendingApplications(ctx)
		ov.Applications = apps
		return err
	})
	g.Go(func() error {
		entries, err := s.RecentActivity(ctx, DefaultActivityLimit)
		ov.Activity = entries
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
