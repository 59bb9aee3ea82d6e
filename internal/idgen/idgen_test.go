package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesPrefix(t *testing.T) {
	g, err := New("  vedo ")
	require.NoError(t, err)

	got := g.Next(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^VEDO-2024-\d{6}$`), got.String())
}

func TestNew_RejectsBadPrefix(t *testing.T) {
	_, err := New("")
	require.Error(t, err)

	_, err = New("VEDO1")
	require.Error(t, err)
}

func TestNext_UsesYearOfClock(t *testing.T) {
	g, err := New("CR")
	require.NoError(t, err)

	got := g.Next(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^CR-2031-\d{6}$`), got.String())
}
