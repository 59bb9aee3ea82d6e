// Package service orchestrates the creator verification workflow: intake,
// review decisions, and public lookup resolution.
package service

import (
	"context"
	"log/slog"
	"time"

	"vedo/internal/audit"
	"vedo/internal/creator/metrics"
	"vedo/internal/creator/store"
	"vedo/internal/idgen"
	"vedo/internal/platform/middleware"
	id "vedo/pkg/domain"
)

// AuditRecorder receives activity entries. Emission is best-effort and never
// fails the originating operation.
type AuditRecorder interface {
	Emit(ctx context.Context, entry *audit.Entry)
}

// LookupCache caches registry-ID lookups. Both methods are best-effort; an
// assigned registry ID maps to one record forever, so entries never go stale.
type LookupCache interface {
	Get(ctx context.Context, query string) (*PublicCreator, bool)
	Set(ctx context.Context, query string, result *PublicCreator)
}

// Service orchestrates creator applications and lookups.
type Service struct {
	store   store.Store
	idgen   idgen.Generator
	tx      StoreTx
	logger  *slog.Logger
	audit   AuditRecorder
	metrics *metrics.Metrics
	cache   LookupCache
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		s.audit = recorder
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLookupCache(cache LookupCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithStoreTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func New(applications store.Store, generator idgen.Generator, opts ...Option) *Service {
	s := &Service{store: applications, idgen: generator, tx: newInMemoryStoreTx()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) emitAudit(ctx context.Context, action audit.Action, description string, actorID id.UserID, creatorID id.CreatorID, metadata map[string]string) {
	if s.logger != nil {
		args := []any{"action", string(action), "creator_id", creatorID, "log_type", "audit"}
		if requestID := middleware.GetRequestID(ctx); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		s.logger.InfoContext(ctx, description, args...)
	}
	if s.audit != nil {
		s.audit.Emit(ctx, audit.NewEntry(action, description, actorID, creatorID, metadata))
	}
}

func now() time.Time {
	return time.Now().UTC()
}
