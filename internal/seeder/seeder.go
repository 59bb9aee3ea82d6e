// Package seeder populates stores with demo data for local development.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	authmodels "vedo/internal/auth/models"
	authstore "vedo/internal/auth/store"
	creatormodels "vedo/internal/creator/models"
	"vedo/internal/creator/store"
	id "vedo/pkg/domain"
)

// Seeder populates in-memory stores with demo accounts and a couple of
// already-verified creators so the lookup has something to find.
type Seeder struct {
	users        authstore.UserStore
	applications store.Store
	logger       *slog.Logger
}

func New(users authstore.UserStore, applications store.Store, logger *slog.Logger) *Seeder {
	return &Seeder{users: users, applications: applications, logger: logger}
}

// SeedAll inserts demo users and verified creators. A nil application store
// skips creator seeding, for deployments where applications are persistent.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("seeding demo data...")

	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if s.applications != nil {
		if err := s.seedCreators(ctx); err != nil {
			return fmt.Errorf("seed creators: %w", err)
		}
	}

	s.logger.Info("demo data seeded")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	now := time.Now().UTC()

	demo := []struct {
		email    string
		name     string
		password string
		role     authmodels.Role
	}{
		{"admin@vedo.gov.sl", "System Administrator", "admin123", authmodels.RoleAdmin},
		{"moderator@vedo.gov.sl", "Content Moderator", "moderator123", authmodels.RoleModerator},
		{"creator@vedo.gov.sl", "Demo Creator", "creator123", authmodels.RoleCreator},
	}

	for _, d := range demo {
		user, err := authmodels.NewUser(id.NewUserID(), d.email, d.name, d.password, d.role, now)
		if err != nil {
			return err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		s.logger.Info("seeded user", "email", d.email, "role", d.role)
	}
	return nil
}

func (s *Seeder) seedCreators(ctx context.Context) error {
	now := time.Now().UTC()

	demo := []struct {
		registryID  string
		firstName   string
		lastName    string
		email       string
		displayName string
		contentType string
		platform    string
		website     string
		level       creatormodels.VerificationLevel
		verifiedAgo time.Duration
	}{
		{
			registryID:  "VEDO-2023-000125",
			firstName:   "Sarah",
			lastName:    "Johnson",
			email:       "sarah@techsarah.com",
			displayName: "TechSarah",
			contentType: "technology",
			platform:    "youtube",
			website:     "https://techsarah.com",
			level:       creatormodels.LevelGold,
			verifiedAgo: 180 * 24 * time.Hour,
		},
		{
			registryID:  "VEDO-2024-000089",
			firstName:   "Mohamed",
			lastName:    "Kallon",
			email:       "mo@kallonbeats.com",
			displayName: "KallonBeats",
			contentType: "music",
			platform:    "tiktok",
			website:     "https://kallonbeats.com",
			level:       creatormodels.LevelSilver,
			verifiedAgo: 30 * 24 * time.Hour,
		},
	}

	for _, d := range demo {
		submitted := now.Add(-d.verifiedAgo - 72*time.Hour)
		app, err := creatormodels.NewApplication(
			id.NewCreatorID(),
			creatormodels.PersonalInfo{FirstName: d.firstName, LastName: d.lastName, Email: d.email},
			creatormodels.CreatorProfile{
				DisplayName:     d.displayName,
				ContentType:     d.contentType,
				PrimaryPlatform: d.platform,
				WebsiteURL:      d.website,
			},
			true, true,
			submitted,
		)
		if err != nil {
			return err
		}
		if err := s.applications.Create(ctx, app); err != nil {
			return err
		}
		if err := app.Approve(id.RegistryID(d.registryID), d.level, now.Add(-d.verifiedAgo)); err != nil {
			return err
		}
		if err := s.applications.Update(ctx, app, creatormodels.StatusPending); err != nil {
			return err
		}
		s.logger.Info("seeded verified creator", "registry_id", d.registryID, "display_name", d.displayName)
	}
	return nil
}
