// Package idgen produces public registry identifiers for approved creators.
package idgen

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	id "vedo/pkg/domain"
)

// Generator produces candidate registry IDs. Uniqueness is enforced by the
// application store; callers retry on collision.
type Generator interface {
	Next(now time.Time) id.RegistryID
}

// RegistryIDGenerator builds IDs of the form PREFIX-YYYY-NNNNNN with a
// random six-digit sequence component.
type RegistryIDGenerator struct {
	prefix string
}

// New creates a generator with the given prefix (e.g. "VEDO").
func New(prefix string) (*RegistryIDGenerator, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, fmt.Errorf("registry ID prefix is required")
	}
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return nil, fmt.Errorf("registry ID prefix must be letters only, got %q", prefix)
		}
	}
	return &RegistryIDGenerator{prefix: prefix}, nil
}

// Next returns a fresh candidate ID for the year of the given time.
func (g *RegistryIDGenerator) Next(now time.Time) id.RegistryID {
	return id.FormatRegistryID(g.prefix, now.Year(), randomSequence())
}

// randomSequence returns a number in [0, 1000000) from crypto/rand.
// Collisions within a year are possible and handled by the store's
// uniqueness constraint plus bounded retry at the service layer.
func randomSequence() int {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived value rather than panicking in a request path.
		return int(time.Now().UnixNano() % 1_000_000)
	}
	return int(binary.BigEndian.Uint32(buf[:]) % 1_000_000)
}
