//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vedo/internal/creator/models"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
	"vedo/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	ctx   context.Context
	pg    *containers.PostgresContainer
	store *PostgresStore
	now   time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(s.ctx))
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) newApplication(email, displayName string) *models.Application {
	app, err := models.NewApplication(
		id.NewCreatorID(),
		models.PersonalInfo{FirstName: "Fatmata", LastName: "Sesay", Email: email},
		models.CreatorProfile{
			DisplayName: displayName,
			ContentType: "music",
			WebsiteURL:  "https://" + displayName + ".example.com",
			Social:      models.SocialLinks{Instagram: "https://instagram.com/" + displayName},
		},
		true, true,
		s.now,
	)
	s.Require().NoError(err)
	return app
}

func (s *PostgresStoreSuite) TestCreateAndFindRoundTrip() {
	app := s.newApplication("fatmata@example.com", "fatmata")
	app.Documents = []models.Document{{Type: "national_id", Status: models.DocumentPending, UploadedAt: s.now}}
	s.Require().NoError(s.store.Create(s.ctx, app))

	got, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(app.Personal, got.Personal)
	s.Equal(app.Profile, got.Profile)
	s.Equal(models.StatusPending, got.Status)
	s.Len(got.Documents, 1)
	s.True(got.RegistryID.IsZero())
}

func (s *PostgresStoreSuite) TestDuplicateEmailRejectedCaseInsensitively() {
	s.Require().NoError(s.store.Create(s.ctx, s.newApplication("fatmata@example.com", "one")))

	err := s.store.Create(s.ctx, s.newApplication("FATMATA@example.com", "two"))
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestRejectedRecordReleasesEmail() {
	app := s.newApplication("fatmata@example.com", "one")
	s.Require().NoError(s.store.Create(s.ctx, app))

	s.Require().NoError(app.Reject("incomplete documents", s.now.Add(time.Minute)))
	s.Require().NoError(s.store.Update(s.ctx, app, models.StatusPending))

	s.Require().NoError(s.store.Create(s.ctx, s.newApplication("fatmata@example.com", "two")))
}

func (s *PostgresStoreSuite) TestUpdateCompareAndSet() {
	app := s.newApplication("fatmata@example.com", "one")
	s.Require().NoError(s.store.Create(s.ctx, app))

	s.Require().NoError(app.StartReview(s.now.Add(time.Minute)))
	s.Require().NoError(s.store.Update(s.ctx, app, models.StatusPending))

	stale := app.Clone()
	err := s.store.Update(s.ctx, stale, models.StatusPending)
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)

	missing := s.newApplication("ghost@example.com", "ghost")
	err = s.store.Update(s.ctx, missing, models.StatusPending)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestApproveAndLookup() {
	app := s.newApplication("fatmata@example.com", "techsarah")
	s.Require().NoError(s.store.Create(s.ctx, app))

	s.Require().NoError(app.Approve(id.RegistryID("VEDO-2024-000125"), models.LevelGold, s.now.Add(time.Hour)))
	s.Require().NoError(s.store.Update(s.ctx, app, models.StatusPending))

	byRID, err := s.store.FindVerifiedByRegistryID(s.ctx, "VEDO-2024-000125")
	s.Require().NoError(err)
	s.Equal(app.ID, byRID.ID)
	s.Equal(models.LevelGold, byRID.Level)
	s.Require().NotNil(byRID.VerifiedAt)

	byName, err := s.store.FindVerifiedByDisplayName(s.ctx, "SARAH")
	s.Require().NoError(err)
	s.Equal(app.ID, byName.ID)

	byWebsite, err := s.store.FindVerifiedByWebsite(s.ctx, "techsarah.example")
	s.Require().NoError(err)
	s.Equal(app.ID, byWebsite.ID)

	_, err = s.store.FindVerifiedByEmail(s.ctx, "nobody@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRegistryIDCollision() {
	first := s.newApplication("one@example.com", "one")
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(first.Approve(id.RegistryID("VEDO-2024-000001"), models.LevelBronze, s.now))
	s.Require().NoError(s.store.Update(s.ctx, first, models.StatusPending))

	second := s.newApplication("two@example.com", "two")
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(second.Approve(id.RegistryID("VEDO-2024-000001"), models.LevelBronze, s.now))
	err := s.store.Update(s.ctx, second, models.StatusPending)
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestListPendingAndStats() {
	pending := s.newApplication("p@example.com", "p")
	s.Require().NoError(s.store.Create(s.ctx, pending))

	review := s.newApplication("r@example.com", "r")
	review.CreatedAt = s.now.Add(time.Hour)
	s.Require().NoError(s.store.Create(s.ctx, review))
	s.Require().NoError(review.StartReview(s.now.Add(2*time.Hour)))
	s.Require().NoError(s.store.Update(s.ctx, review, models.StatusPending))

	verified := s.newApplication("v@example.com", "v")
	s.Require().NoError(s.store.Create(s.ctx, verified))
	s.Require().NoError(verified.Approve(id.RegistryID("VEDO-2024-000002"), models.LevelSilver, s.now))
	s.Require().NoError(s.store.Update(s.ctx, verified, models.StatusPending))

	list, err := s.store.ListPending(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(review.ID, list[0].ID)
	s.Equal(pending.ID, list[1].ID)

	monthStart := time.Date(s.now.Year(), s.now.Month(), 1, 0, 0, 0, 0, time.UTC)
	st, err := s.store.Stats(s.ctx, monthStart)
	s.Require().NoError(err)
	s.Equal(3, st.TotalCreators)
	s.Equal(2, st.PendingApplications)
	s.Equal(1, st.ActiveCreators)
	s.Equal(3, st.MonthlyRegistrations)
}
