// Package store persists creator applications. Implementations enforce the
// two uniqueness contracts the workflow relies on: email is unique among
// non-rejected records, and registry IDs are globally unique.
package store

import (
	"context"
	"time"

	"vedo/internal/creator/models"
	id "vedo/pkg/domain"
)

// Stats aggregates dashboard counts for the admin overview.
type Stats struct {
	TotalCreators        int `json:"total_creators"`
	PendingApplications  int `json:"pending_applications"`
	ActiveCreators       int `json:"active_creators"`
	MonthlyRegistrations int `json:"monthly_registrations"`
}

// Store is the application record store. Sentinel errors signal contract
// violations: ErrAlreadyUsed for uniqueness, ErrInvalidState for a failed
// status compare-and-set, ErrNotFound for missing records. Services translate
// them into domain errors exactly once.
type Store interface {
	// Create persists a new pending application. Fails with ErrAlreadyUsed
	// when the email is already held by a non-rejected record.
	Create(ctx context.Context, app *models.Application) error

	FindByID(ctx context.Context, creatorID id.CreatorID) (*models.Application, error)

	// Update applies a transition atomically, guarded by the status the
	// caller observed. Fails with ErrInvalidState when the stored status no
	// longer matches (a concurrent transition won), and ErrAlreadyUsed when
	// the assigned registry ID collides with an existing one.
	Update(ctx context.Context, app *models.Application, expected models.Status) error

	// Lookup finders. All restrict to verified records and return the single
	// best match, most-recently-verified first; ErrNotFound otherwise.
	FindVerifiedByRegistryID(ctx context.Context, registryID string) (*models.Application, error)
	FindVerifiedByEmail(ctx context.Context, email string) (*models.Application, error)
	FindVerifiedByDisplayName(ctx context.Context, fragment string) (*models.Application, error)
	FindVerifiedByWebsite(ctx context.Context, fragment string) (*models.Application, error)

	// ListPending returns applications awaiting a decision (pending or
	// under_review), newest first.
	ListPending(ctx context.Context) ([]*models.Application, error)

	// Stats aggregates dashboard counts; monthStart bounds the monthly
	// registration count.
	Stats(ctx context.Context, monthStart time.Time) (*Stats, error)
}
