package postgres

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

var profileColumns = []string{"id", "user_id", "name", "email", "company_ids", "created_at", "updated_at"}

type profileRow struct {
	ID         uuid.UUID      `db:"id"`
	UserID     uuid.UUID      `db:"user_id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	CompanyIDs pq.StringArray `db:"company_ids"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r *profileRow) toDomain(log *slog.Logger) *domain.Profile {
	return &domain.Profile{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Email:     r.Email,
		Companies: parseUUIDArray(log, r.CompanyIDs),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PostgresProfileStore implements store.ProfileStore.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a profile store. If logger is nil, a
// default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sqlx.Tx) store.ProfileStore {
	return &PostgresProfileStore{db: tx, logger: s.logger}
}

// Create implements store.ProfileStore.Create
func (s *PostgresProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		return err
	}

	b := psql.Insert("profiles").
		Columns(profileColumns...).
		Values(p.ID, p.UserID, p.Name, p.Email, uuidArray(p.Companies), p.CreatedAt, p.UpdatedAt)
	if _, err := execQuery(ctx, s.db, b); err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", p.ID.String()),
			slog.String("user_id", p.UserID.String()))
		return MapError(err)
	}

	log.Debug("profile created", slog.String("profile_id", p.ID.String()))
	return nil
}

// GetByID implements store.ProfileStore.GetByID
func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row profileRow
	b := psql.Select(profileColumns...).From("profiles").Where(sq.Eq{"id": id})
	if err := getOne(ctx, s.db, b, &row); err != nil {
		return nil, mapNotFound(err, store.ErrProfileNotFound)
	}
	return row.toDomain(log), nil
}

// ListByUser implements store.ProfileStore.ListByUser
func (s *PostgresProfileStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []profileRow
	b := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC")
	if err := getAll(ctx, s.db, b, &rows); err != nil {
		log.Error("failed to list profiles",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].toDomain(log))
	}
	return profiles, nil
}

// CountByUser implements store.ProfileStore.CountByUser
func (s *PostgresProfileStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	b := psql.Select("COUNT(*)").From("profiles").Where(sq.Eq{"user_id": userID})
	if err := getOne(ctx, s.db, b, &n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Update implements store.ProfileStore.Update
func (s *PostgresProfileStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ProfilePatch,
) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	setIfPresent(set, "name", patch.Name)
	setIfPresent(set, "email", patch.Email)

	var row profileRow
	if err := updateReturning(ctx, s.db, "profiles", profileColumns, id, set, &row); err != nil {
		return nil, mapNotFound(err, store.ErrProfileNotFound)
	}
	log.Debug("profile updated", slog.String("profile_id", id.String()))
	return row.toDomain(log), nil
}

// Delete implements store.ProfileStore.Delete. Companies, contacts, jobs
// and events under the profile are removed by ON DELETE CASCADE.
func (s *PostgresProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := execQuery(ctx, s.db, psql.Delete("profiles").Where(sq.Eq{"id": id}))
	if err != nil {
		log.Error("failed to delete profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrProfileNotFound)
}
