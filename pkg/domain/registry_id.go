package domain

import (
	"fmt"
	"regexp"
	"strings"

	dErrors "vedo/pkg/domain-errors"
)

// RegistryID is the public-facing code assigned to a creator on approval,
// e.g. "VEDO-2024-001247". It exists only on verified records.
type RegistryID string

var registryIDPattern = regexp.MustCompile(`^[A-Z]+-\d{4}-\d{6}$`)

// FormatRegistryID builds a registry ID from its parts. The sequence number
// is zero-padded to six digits.
func FormatRegistryID(prefix string, year, seq int) RegistryID {
	return RegistryID(fmt.Sprintf("%s-%d-%06d", strings.ToUpper(prefix), year, seq))
}

// NormalizeRegistryID uppercases and trims a raw query string so lookups are
// case-insensitive.
func NormalizeRegistryID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseRegistryID validates a caller-supplied registry ID. Use at trust
// boundaries; stored IDs are generated and never re-parsed.
func ParseRegistryID(s string) (RegistryID, error) {
	normalized := NormalizeRegistryID(s)
	if normalized == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "registry ID cannot be empty")
	}
	if !registryIDPattern.MatchString(normalized) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid registry ID format")
	}
	return RegistryID(normalized), nil
}

// MatchesRegistryIDFormat reports whether a normalized string looks like a
// registry ID at all. The lookup resolver uses this to skip the exact-ID step
// for free-text queries without treating them as errors.
func MatchesRegistryIDFormat(s string) bool {
	return registryIDPattern.MatchString(NormalizeRegistryID(s))
}

func (id RegistryID) String() string { return string(id) }

func (id RegistryID) IsZero() bool { return id == "" }
