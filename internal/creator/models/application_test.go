package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

func newPendingApplication(t *testing.T) *Application {
	t.Helper()
	app, err := NewApplication(
		id.CreatorID(uuid.New()),
		PersonalInfo{FirstName: "Sarah", LastName: "Kamara", Email: "sarah@techsarah.com"},
		CreatorProfile{DisplayName: "TechSarah"},
		true, true,
		time.Now(),
	)
	require.NoError(t, err)
	return app
}

func TestNewApplication_RequiresConsent(t *testing.T) {
	_, err := NewApplication(id.CreatorID(uuid.New()), PersonalInfo{}, CreatorProfile{}, false, true, time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewApplication(id.CreatorID(uuid.New()), PersonalInfo{}, CreatorProfile{}, true, false, time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestStartReview(t *testing.T) {
	app := newPendingApplication(t)
	require.NoError(t, app.StartReview(time.Now()))
	assert.Equal(t, StatusUnderReview, app.Status)

	// under_review cannot re-enter review
	err := app.StartReview(time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestApprove_FromPendingAndReview(t *testing.T) {
	now := time.Now()

	app := newPendingApplication(t)
	require.NoError(t, app.Approve("VEDO-2024-000001", LevelGold, now))
	assert.Equal(t, StatusVerified, app.Status)
	assert.Equal(t, id.RegistryID("VEDO-2024-000001"), app.RegistryID)
	assert.Equal(t, LevelGold, app.Level)
	require.NotNil(t, app.VerifiedAt)
	assert.Equal(t, now, *app.VerifiedAt)

	reviewed := newPendingApplication(t)
	require.NoError(t, reviewed.StartReview(now))
	require.NoError(t, reviewed.Approve("VEDO-2024-000002", "", now))
	assert.Equal(t, LevelBronze, reviewed.Level, "level defaults to bronze")
}

func TestApprove_TerminalStatesRefuse(t *testing.T) {
	app := newPendingApplication(t)
	require.NoError(t, app.Approve("VEDO-2024-000003", LevelBronze, time.Now()))

	err := app.Approve("VEDO-2024-000004", LevelBronze, time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	assert.Equal(t, id.RegistryID("VEDO-2024-000003"), app.RegistryID, "registry ID unchanged")

	rejected := newPendingApplication(t)
	require.NoError(t, rejected.Reject("incomplete documents", time.Now()))
	err = rejected.Approve("VEDO-2024-000005", LevelBronze, time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestApprove_RequiresRegistryID(t *testing.T) {
	app := newPendingApplication(t)
	err := app.Approve("", LevelBronze, time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	assert.Equal(t, StatusPending, app.Status)
}

func TestReject(t *testing.T) {
	app := newPendingApplication(t)
	require.NoError(t, app.Reject("national ID could not be confirmed", time.Now()))
	assert.Equal(t, StatusRejected, app.Status)
	assert.Equal(t, "national ID could not be confirmed", app.RejectionReason)
	assert.True(t, app.RegistryID.IsZero(), "no registry ID on rejection")

	// terminal after rejection
	err := app.Reject("again", time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestReject_RequiresReason(t *testing.T) {
	app := newPendingApplication(t)
	err := app.Reject("", time.Now())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, StatusPending, app.Status)
}

func TestVerifiedIffRegistryID(t *testing.T) {
	app := newPendingApplication(t)
	assert.True(t, app.RegistryID.IsZero())
	assert.False(t, app.IsVerified())

	require.NoError(t, app.Approve("VEDO-2024-000006", LevelSilver, time.Now()))
	assert.True(t, app.IsVerified())
	assert.False(t, app.RegistryID.IsZero())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelBronze, level)

	level, err = ParseLevel("gold")
	require.NoError(t, err)
	assert.Equal(t, LevelGold, level)

	_, err = ParseLevel("platinum")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
