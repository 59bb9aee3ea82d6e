package audit

import (
	"time"

	"github.com/google/uuid"

	id "vedo/pkg/domain"
)

// Action classifies a state-changing event in the verification workflow.
type Action string

const (
	ActionRegistration Action = "registration"
	ActionApproval     Action = "approval"
	ActionRejection    Action = "rejection"
	ActionReview       Action = "review"
)

// Entry is an immutable activity record. Keep it transport-agnostic so
// stores and sinks can fan out.
type Entry struct {
	ID          uuid.UUID         `json:"id"`
	Action      Action            `json:"action"`
	Description string            `json:"description"`
	ActorID     id.UserID         `json:"actor_id"`
	CreatorID   id.CreatorID      `json:"creator_id"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewEntry creates an entry with a generated ID. The timestamp is stamped by
// the publisher if left zero.
func NewEntry(action Action, description string, actorID id.UserID, creatorID id.CreatorID, metadata map[string]string) *Entry {
	return &Entry{
		ID:          uuid.New(),
		Action:      action,
		Description: description,
		ActorID:     actorID,
		CreatorID:   creatorID,
		Metadata:    metadata,
	}
}
