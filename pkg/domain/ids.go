// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "vedo/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing UserID where CreatorID is expected.
type (
	CreatorID  uuid.UUID
	UserID     uuid.UUID
	DocumentID uuid.UUID
)

// New functions - for creating fresh identifiers.

func NewCreatorID() CreatorID   { return CreatorID(uuid.New()) }
func NewUserID() UserID         { return UserID(uuid.New()) }
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseCreatorID(s string) (CreatorID, error) {
	id, err := parseUUID(s, "creator ID")
	return CreatorID(id), err
}

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	id, err := parseUUID(s, "document ID")
	return DocumentID(id), err
}

// String methods - for logging and debugging.

func (id CreatorID) String() string  { return uuid.UUID(id).String() }
func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id DocumentID) String() string { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id CreatorID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic.
// Nil UUIDs are allowed here. Use IsNil() at the service layer for business
// validation, which allows store lookups to return proper "not found" errors.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
