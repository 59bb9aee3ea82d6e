package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vedo/internal/creator/models"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

// PublicCreator is the public projection of a verified record. Personal data
// beyond the creator's own public profile never leaves the service.
type PublicCreator struct {
	RegistryID      id.RegistryID            `json:"registry_id"`
	DisplayName     string                   `json:"display_name"`
	FullName        string                   `json:"full_name"`
	Bio             string                   `json:"bio,omitempty"`
	ContentType     string                   `json:"content_type,omitempty"`
	PrimaryPlatform string                   `json:"primary_platform,omitempty"`
	WebsiteURL      string                   `json:"website_url,omitempty"`
	Social          models.SocialLinks       `json:"social,omitempty"`
	Level           models.VerificationLevel `json:"verification_level"`
	VerifiedAt      time.Time                `json:"verified_at"`
}

// Resolve answers a public lookup. The query is matched against identifying
// fields in fixed order: registry ID, then email, then display name, then
// website. A miss is a normal outcome and returns (nil, nil); only backend
// failures surface as errors.
func (s *Service) Resolve(ctx context.Context, query string) (*PublicCreator, error) {
	start := now()
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	// Only registry-ID hits are cacheable: an assigned ID maps to exactly one
	// record forever, while fragment matches can be displaced by a newer
	// verification before the TTL runs out.
	cacheKey := ""
	if normalized := id.NormalizeRegistryID(query); id.MatchesRegistryIDFormat(normalized) {
		cacheKey = normalized
	}
	if s.cache != nil && cacheKey != "" {
		if hit, ok := s.cache.Get(ctx, cacheKey); ok {
			if s.metrics != nil {
				s.metrics.IncrementCacheHit()
			}
			return hit, nil
		}
	}

	app, err := s.resolveUncached(ctx, query)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveResolve(start)
	}
	if app == nil {
		return nil, nil
	}

	result := publicProjection(app)
	if s.cache != nil && cacheKey != "" {
		s.cache.Set(ctx, cacheKey, result)
	}
	return result, nil
}

func (s *Service) resolveUncached(ctx context.Context, query string) (*models.Application, error) {
	type finder func(context.Context, string) (*models.Application, error)

	attempts := []struct {
		arg  string
		find finder
	}{
		{id.NormalizeRegistryID(query), s.findByRegistryIDIfWellFormed},
		{strings.ToLower(query), s.store.FindVerifiedByEmail},
		{query, s.store.FindVerifiedByDisplayName},
		{query, s.store.FindVerifiedByWebsite},
	}

	for _, attempt := range attempts {
		app, err := attempt.find(ctx, attempt.arg)
		if err == nil {
			return app, nil
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "lookup is temporarily unavailable")
	}
	return nil, nil
}

// findByRegistryIDIfWellFormed skips the registry ID probe for queries that
// cannot be registry IDs, saving a store round trip for name searches.
func (s *Service) findByRegistryIDIfWellFormed(ctx context.Context, candidate string) (*models.Application, error) {
	if !id.MatchesRegistryIDFormat(candidate) {
		return nil, sentinel.ErrNotFound
	}
	return s.store.FindVerifiedByRegistryID(ctx, candidate)
}

func publicProjection(app *models.Application) *PublicCreator {
	p := &PublicCreator{
		RegistryID:      app.RegistryID,
		DisplayName:     app.Profile.DisplayName,
		FullName:        app.FullName(),
		Bio:             app.Profile.Bio,
		ContentType:     app.Profile.ContentType,
		PrimaryPlatform: app.Profile.PrimaryPlatform,
		WebsiteURL:      app.Profile.WebsiteURL,
		Social:          app.Profile.Social,
		Level:           app.Level,
	}
	if app.VerifiedAt != nil {
		p.VerifiedAt = *app.VerifiedAt
	}
	return p
}
