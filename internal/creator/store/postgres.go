package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"vedo/internal/creator/models"
	"vedo/internal/sentinel"
	id "vedo/pkg/domain"
)

// PostgresStore persists creator applications in PostgreSQL.
//
// Uniqueness lives in the schema: a partial unique index on lower(email)
// excludes rejected records, and registry_id carries a plain unique
// constraint. Both surface as ErrAlreadyUsed.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const applicationColumns = `
	id, registry_id,
	first_name, last_name, email, phone, national_id, date_of_birth, address,
	display_name, bio, content_type, primary_platform, website_url, social,
	terms_agreed, ip_policy_agreed, documents,
	verification_status, verification_level, rejection_reason, verified_at,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, app *models.Application) error {
	if app == nil {
		return fmt.Errorf("application is required")
	}
	social, documents, err := marshalJSONFields(app)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO content_creators (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(app.ID),
		nullableString(app.RegistryID.String()),
		app.Personal.FirstName, app.Personal.LastName, app.Personal.Email,
		app.Personal.Phone, app.Personal.NationalID, app.Personal.DateOfBirth, app.Personal.Address,
		app.Profile.DisplayName, app.Profile.Bio, app.Profile.ContentType,
		app.Profile.PrimaryPlatform, app.Profile.WebsiteURL, social,
		app.TermsAgreed, app.IPPolicyAgreed, documents,
		string(app.Status), nullableString(string(app.Level)), nullableString(app.RejectionReason), app.VerifiedAt,
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, creatorID id.CreatorID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM content_creators WHERE id = $1`
	app, err := scanApplication(s.db.QueryRowContext(ctx, query, uuid.UUID(creatorID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find application by id: %w", err)
	}
	return app, nil
}

// Update applies a transition guarded by the status the caller observed. The
// WHERE clause is the compare-and-set: zero rows means either the record is
// gone or a concurrent transition won.
func (s *PostgresStore) Update(ctx context.Context, app *models.Application, expected models.Status) error {
	if app == nil {
		return fmt.Errorf("application is required")
	}
	social, documents, err := marshalJSONFields(app)
	if err != nil {
		return err
	}
	query := `
		UPDATE content_creators
		SET registry_id = $3,
		    first_name = $4, last_name = $5, email = $6, phone = $7,
		    national_id = $8, date_of_birth = $9, address = $10,
		    display_name = $11, bio = $12, content_type = $13,
		    primary_platform = $14, website_url = $15, social = $16,
		    documents = $17,
		    verification_status = $18, verification_level = $19,
		    rejection_reason = $20, verified_at = $21, updated_at = $22
		WHERE id = $1 AND verification_status = $2
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(app.ID), string(expected),
		nullableString(app.RegistryID.String()),
		app.Personal.FirstName, app.Personal.LastName, app.Personal.Email, app.Personal.Phone,
		app.Personal.NationalID, app.Personal.DateOfBirth, app.Personal.Address,
		app.Profile.DisplayName, app.Profile.Bio, app.Profile.ContentType,
		app.Profile.PrimaryPlatform, app.Profile.WebsiteURL, social,
		documents,
		string(app.Status), nullableString(string(app.Level)),
		nullableString(app.RejectionReason), app.VerifiedAt, app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("registry ID already assigned: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update application: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application rows: %w", err)
	}
	if rows == 0 {
		if _, findErr := s.FindByID(ctx, app.ID); errors.Is(findErr, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrInvalidState
	}
	return nil
}

func (s *PostgresStore) FindVerifiedByRegistryID(ctx context.Context, registryID string) (*models.Application, error) {
	return s.findVerified(ctx, `registry_id = $1`, registryID)
}

func (s *PostgresStore) FindVerifiedByEmail(ctx context.Context, email string) (*models.Application, error) {
	return s.findVerified(ctx, `lower(email) = lower($1)`, email)
}

func (s *PostgresStore) FindVerifiedByDisplayName(ctx context.Context, fragment string) (*models.Application, error) {
	return s.findVerified(ctx, `display_name ILIKE '%' || $1 || '%'`, fragment)
}

func (s *PostgresStore) FindVerifiedByWebsite(ctx context.Context, fragment string) (*models.Application, error) {
	return s.findVerified(ctx, `website_url ILIKE '%' || $1 || '%'`, fragment)
}

func (s *PostgresStore) findVerified(ctx context.Context, predicate string, arg any) (*models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM content_creators
		WHERE verification_status = 'verified' AND ` + predicate + `
		ORDER BY verified_at DESC
		LIMIT 1
	`
	app, err := scanApplication(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verified application: %w", err)
	}
	return app, nil
}

func (s *PostgresStore) ListPending(ctx context.Context) ([]*models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM content_creators
		WHERE verification_status IN ('pending', 'under_review')
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending application: %w", err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Stats(ctx context.Context, monthStart time.Time) (*Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE verification_status IN ('pending', 'under_review')),
			COUNT(*) FILTER (WHERE verification_status = 'verified'),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM content_creators
	`
	var st Stats
	err := s.db.QueryRowContext(ctx, query, monthStart).Scan(
		&st.TotalCreators,
		&st.PendingApplications,
		&st.ActiveCreators,
		&st.MonthlyRegistrations,
	)
	if err != nil {
		return nil, fmt.Errorf("application stats: %w", err)
	}
	return &st, nil
}

type applicationRow interface {
	Scan(dest ...any) error
}

func scanApplication(row applicationRow) (*models.Application, error) {
	var (
		app        models.Application
		creatorID  uuid.UUID
		registryID sql.NullString
		level      sql.NullString
		reason     sql.NullString
		social     []byte
		documents  []byte
	)
	err := row.Scan(
		&creatorID, &registryID,
		&app.Personal.FirstName, &app.Personal.LastName, &app.Personal.Email,
		&app.Personal.Phone, &app.Personal.NationalID, &app.Personal.DateOfBirth, &app.Personal.Address,
		&app.Profile.DisplayName, &app.Profile.Bio, &app.Profile.ContentType,
		&app.Profile.PrimaryPlatform, &app.Profile.WebsiteURL, &social,
		&app.TermsAgreed, &app.IPPolicyAgreed, &documents,
		(*string)(&app.Status), &level, &reason, &app.VerifiedAt,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.ID = id.CreatorID(creatorID)
	app.RegistryID = id.RegistryID(registryID.String)
	app.Level = models.VerificationLevel(level.String)
	app.RejectionReason = reason.String
	if len(social) > 0 {
		if err := json.Unmarshal(social, &app.Profile.Social); err != nil {
			return nil, fmt.Errorf("decode social links: %w", err)
		}
	}
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &app.Documents); err != nil {
			return nil, fmt.Errorf("decode documents: %w", err)
		}
	}
	return &app, nil
}

func marshalJSONFields(app *models.Application) (social, documents []byte, err error) {
	social, err = json.Marshal(app.Profile.Social)
	if err != nil {
		return nil, nil, fmt.Errorf("encode social links: %w", err)
	}
	documents, err = json.Marshal(app.Documents)
	if err != nil {
		return nil, nil, fmt.Errorf("encode documents: %w", err)
	}
	return social, documents, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
