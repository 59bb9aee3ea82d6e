package audit

import (
	"context"

	id "vedo/pkg/domain"
)

// Store persists audit entries. Append-only; entries are never updated or
// deleted. List methods return newest first.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
	ListByCreator(ctx context.Context, creatorID id.CreatorID) ([]*Entry, error)
}
