package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vedo/internal/creator/models"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
	now   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
	s.now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) newApplication(email, displayName string) *models.Application {
	app, err := models.NewApplication(
		id.NewCreatorID(),
		models.PersonalInfo{FirstName: "Amara", LastName: "Kamara", Email: email},
		models.CreatorProfile{DisplayName: displayName, ContentType: "education", WebsiteURL: "https://" + displayName + ".example.com"},
		true, true,
		s.now,
	)
	s.Require().NoError(err)
	return app
}

func (s *InMemoryStoreSuite) approve(app *models.Application, registryID string, at time.Time) {
	expected := app.Status
	s.Require().NoError(app.Approve(id.RegistryID(registryID), models.LevelGold, at))
	s.Require().NoError(s.store.Update(s.ctx, app, expected))
}

func (s *InMemoryStoreSuite) TestCreateRejectsDuplicateEmail() {
	first := s.newApplication("amara@example.com", "amara")
	s.Require().NoError(s.store.Create(s.ctx, first))

	dupe := s.newApplication("Amara@Example.com", "other")
	err := s.store.Create(s.ctx, dupe)
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *InMemoryStoreSuite) TestRejectedRecordReleasesEmail() {
	first := s.newApplication("amara@example.com", "amara")
	s.Require().NoError(s.store.Create(s.ctx, first))

	s.Require().NoError(first.Reject("incomplete documents", s.now.Add(time.Hour)))
	s.Require().NoError(s.store.Update(s.ctx, first, models.StatusPending))

	again := s.newApplication("amara@example.com", "amara-two")
	s.Require().NoError(s.store.Create(s.ctx, again))
}

func (s *InMemoryStoreSuite) TestUpdateEnforcesExpectedStatus() {
	app := s.newApplication("amara@example.com", "amara")
	s.Require().NoError(s.store.Create(s.ctx, app))

	s.Require().NoError(app.StartReview(s.now.Add(time.Minute)))
	s.Require().NoError(s.store.Update(s.ctx, app, models.StatusPending))

	// Stale writer still sees pending.
	stale := app.Clone()
	err := s.store.Update(s.ctx, stale, models.StatusPending)
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)
}

func (s *InMemoryStoreSuite) TestUpdateRejectsRegistryIDCollision() {
	first := s.newApplication("one@example.com", "one")
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.approve(first, "VEDO-2024-000001", s.now)

	second := s.newApplication("two@example.com", "two")
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(second.Approve(id.RegistryID("VEDO-2024-000001"), models.LevelBronze, s.now))
	err := s.store.Update(s.ctx, second, models.StatusPending)
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *InMemoryStoreSuite) TestFindByIDReturnsCopy() {
	app := s.newApplication("amara@example.com", "amara")
	s.Require().NoError(s.store.Create(s.ctx, app))

	got, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	got.Personal.FirstName = "mutated"

	again, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal("Amara", again.Personal.FirstName)
}

func (s *InMemoryStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(s.ctx, id.NewCreatorID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestVerifiedFinders() {
	app := s.newApplication("amara@example.com", "techsarah")
	s.Require().NoError(s.store.Create(s.ctx, app))

	// Not verified yet: no finder should surface it.
	_, err := s.store.FindVerifiedByEmail(s.ctx, "amara@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.approve(app, "VEDO-2024-000125", s.now.Add(time.Hour))

	byRID, err := s.store.FindVerifiedByRegistryID(s.ctx, "VEDO-2024-000125")
	s.Require().NoError(err)
	s.Equal(app.ID, byRID.ID)

	byEmail, err := s.store.FindVerifiedByEmail(s.ctx, "AMARA@EXAMPLE.COM")
	s.Require().NoError(err)
	s.Equal(app.ID, byEmail.ID)

	byName, err := s.store.FindVerifiedByDisplayName(s.ctx, "sarah")
	s.Require().NoError(err)
	s.Equal(app.ID, byName.ID)

	byWebsite, err := s.store.FindVerifiedByWebsite(s.ctx, "techsarah.example")
	s.Require().NoError(err)
	s.Equal(app.ID, byWebsite.ID)
}

func (s *InMemoryStoreSuite) TestFindersPreferMostRecentlyVerified() {
	older := s.newApplication("older@example.com", "creative studio")
	s.Require().NoError(s.store.Create(s.ctx, older))
	s.approve(older, "VEDO-2024-000001", s.now)

	newer := s.newApplication("newer@example.com", "creative lab")
	s.Require().NoError(s.store.Create(s.ctx, newer))
	s.approve(newer, "VEDO-2024-000002", s.now.Add(2*time.Hour))

	got, err := s.store.FindVerifiedByDisplayName(s.ctx, "creative")
	s.Require().NoError(err)
	s.Equal(newer.ID, got.ID)
}

func (s *InMemoryStoreSuite) TestListPendingNewestFirst() {
	first := s.newApplication("a@example.com", "a")
	first.CreatedAt = s.now
	s.Require().NoError(s.store.Create(s.ctx, first))

	second := s.newApplication("b@example.com", "b")
	second.CreatedAt = s.now.Add(time.Hour)
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(second.StartReview(s.now.Add(2*time.Hour)))
	s.Require().NoError(s.store.Update(s.ctx, second, models.StatusPending))

	verified := s.newApplication("c@example.com", "c")
	s.Require().NoError(s.store.Create(s.ctx, verified))
	s.approve(verified, "VEDO-2024-000009", s.now)

	got, err := s.store.ListPending(s.ctx)
	s.Require().NoError(err)
	require.Len(s.T(), got, 2)
	s.Equal(second.ID, got[0].ID)
	s.Equal(first.ID, got[1].ID)
}

func (s *InMemoryStoreSuite) TestStats() {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	pending := s.newApplication("p@example.com", "p")
	s.Require().NoError(s.store.Create(s.ctx, pending))

	verified := s.newApplication("v@example.com", "v")
	s.Require().NoError(s.store.Create(s.ctx, verified))
	s.approve(verified, "VEDO-2024-000003", s.now)

	old := s.newApplication("o@example.com", "o")
	old.CreatedAt = monthStart.AddDate(0, -2, 0)
	s.Require().NoError(s.store.Create(s.ctx, old))
	s.Require().NoError(old.Reject("not eligible", s.now))
	s.Require().NoError(s.store.Update(s.ctx, old, models.StatusPending))

	st, err := s.store.Stats(s.ctx, monthStart)
	s.Require().NoError(err)
	s.Equal(3, st.TotalCreators)
	s.Equal(1, st.PendingApplications)
	s.Equal(1, st.ActiveCreators)
	s.Equal(2, st.MonthlyRegistrations)
}
