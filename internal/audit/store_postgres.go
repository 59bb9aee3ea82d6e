package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	id "vedo/pkg/domain"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts an entry into the audit_entries table.
func (s *PostgresStore) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO audit_entries (id, action, description, actor_id, creator_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Action),
		entry.Description,
		uuid.UUID(entry.ActorID),
		uuid.UUID(entry.CreatorID),
		metadata,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	query := `
		SELECT id, action, description, actor_id, creator_id, metadata, created_at
		FROM audit_entries
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByCreator returns all entries for a creator, newest first.
func (s *PostgresStore) ListByCreator(ctx context.Context, creatorID id.CreatorID) ([]*Entry, error) {
	query := `
		SELECT id, action, description, actor_id, creator_id, metadata, created_at
		FROM audit_entries
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(creatorID))
	if err != nil {
		return nil, fmt.Errorf("list audit entries by creator: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var out []*Entry
	for rows.Next() {
		var (
			entry     Entry
			action    string
			actorID   uuid.UUID
			creatorID uuid.UUID
			metadata  []byte
		)
		if err := rows.Scan(&entry.ID, &action, &entry.Description, &actorID, &creatorID, &metadata, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.Action = Action(action)
		entry.ActorID = id.UserID(actorID)
		entry.CreatorID = id.CreatorID(creatorID)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}
