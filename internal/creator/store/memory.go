package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"vedo/internal/creator/models"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
)

// InMemory is a mutex-guarded Store for tests and single-node deployments.
type InMemory struct {
	mu         sync.RWMutex
	byID       map[id.CreatorID]*models.Application
	emailIndex map[string]id.CreatorID // lower-cased email -> non-rejected record
	ridIndex   map[string]id.CreatorID // registry ID -> verified record
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:       make(map[id.CreatorID]*models.Application),
		emailIndex: make(map[string]id.CreatorID),
		ridIndex:   make(map[string]id.CreatorID),
	}
}

func (s *InMemory) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(app.Personal.Email)
	if _, taken := s.emailIndex[email]; taken {
		return sentinel.ErrAlreadyUsed
	}

	cp := app.Clone()
	s.byID[cp.ID] = cp
	s.emailIndex[email] = cp.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, creatorID id.CreatorID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.byID[creatorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return app.Clone(), nil
}

func (s *InMemory) Update(_ context.Context, app *models.Application, expected models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[app.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Status != expected {
		return sentinel.ErrInvalidState
	}

	if rid := app.RegistryID.String(); rid != "" {
		if holder, taken := s.ridIndex[rid]; taken && holder != app.ID {
			return sentinel.ErrAlreadyUsed
		}
	}

	cp := app.Clone()
	s.byID[cp.ID] = cp

	email := strings.ToLower(cp.Personal.Email)
	if cp.Status == models.StatusRejected {
		// Rejected records release the email slot for re-registration.
		if holder, ok := s.emailIndex[email]; ok && holder == cp.ID {
			delete(s.emailIndex, email)
		}
	}
	if rid := cp.RegistryID.String(); rid != "" {
		s.ridIndex[rid] = cp.ID
	}
	return nil
}

func (s *InMemory) FindVerifiedByRegistryID(_ context.Context, registryID string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creatorID, ok := s.ridIndex[registryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	app := s.byID[creatorID]
	if app == nil || app.Status != models.StatusVerified {
		return nil, sentinel.ErrNotFound
	}
	return app.Clone(), nil
}

func (s *InMemory) FindVerifiedByEmail(_ context.Context, email string) (*models.Application, error) {
	return s.findVerified(func(app *models.Application) bool {
		return strings.EqualFold(app.Personal.Email, email)
	})
}

func (s *InMemory) FindVerifiedByDisplayName(_ context.Context, fragment string) (*models.Application, error) {
	needle := strings.ToLower(fragment)
	return s.findVerified(func(app *models.Application) bool {
		return strings.Contains(strings.ToLower(app.Profile.DisplayName), needle)
	})
}

func (s *InMemory) FindVerifiedByWebsite(_ context.Context, fragment string) (*models.Application, error) {
	needle := strings.ToLower(fragment)
	return s.findVerified(func(app *models.Application) bool {
		return strings.Contains(strings.ToLower(app.Profile.WebsiteURL), needle)
	})
}

// findVerified scans verified records and returns the most recently verified
// match.
func (s *InMemory) findVerified(match func(*models.Application) bool) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *models.Application
	for _, app := range s.byID {
		if app.Status != models.StatusVerified || !match(app) {
			continue
		}
		if best == nil || laterVerified(app, best) {
			best = app
		}
	}
	if best == nil {
		return nil, sentinel.ErrNotFound
	}
	return best.Clone(), nil
}

func laterVerified(a, b *models.Application) bool {
	switch {
	case a.VerifiedAt == nil:
		return false
	case b.VerifiedAt == nil:
		return true
	default:
		return a.VerifiedAt.After(*b.VerifiedAt)
	}
}

func (s *InMemory) ListPending(_ context.Context) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Application
	for _, app := range s.byID {
		if app.Status == models.StatusPending || app.Status == models.StatusUnderReview {
			out = append(out, app.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) Stats(_ context.Context, monthStart time.Time) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &Stats{}
	for _, app := range s.byID {
		st.TotalCreators++
		switch app.Status {
		case models.StatusPending, models.StatusUnderReview:
			st.PendingApplications++
		case models.StatusVerified:
			st.ActiveCreators++
		}
		if !app.CreatedAt.Before(monthStart) {
			st.MonthlyRegistrations++
		}
	}
	return st, nil
}
