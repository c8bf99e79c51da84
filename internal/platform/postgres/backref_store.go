package postgres

import (
	"context"
	"fmt"
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

// refSpec locates a back-reference list in the schema.
type refSpec struct {
	parentTable  string
	column       string
	childTable   string
	parentColumn string // child column linking to the parent
}

var refSpecs = map[store.RefList]refSpec{
	store.ProfileCompanies: {"profiles", "company_ids", "companies", "profile_id"},
	store.CompanyContacts:  {"companies", "contact_ids", "contacts", "company_id"},
	store.CompanyJobs:      {"companies", "job_ids", "jobs", "company_id"},
	store.CompanyEvents:    {"companies", "event_ids", "events", "company_id"},
}

func lookupRefSpec(list store.RefList) (refSpec, error) {
	target, ok := refSpecs[list]
	if !ok {
		return refSpec{}, fmt.Errorf("unknown reference list %q", string(list))
	}
	return target, nil
}

type lockedParentRow struct {
	ID        uuid.UUID      `db:"id"`
	UserID    uuid.UUID      `db:"user_id"`
	ProfileID uuid.NullUUID  `db:"profile_id"`
	Refs      pq.StringArray `db:"refs"`
}

// lineage is the chain a child created under this parent is stamped with.
func (r *lockedParentRow) lineage() domain.Ancestry {
	if !r.ProfileID.Valid {
		return domain.Ancestry{UserID: r.UserID, ProfileID: r.ID}
	}
	return domain.Ancestry{UserID: r.UserID, ProfileID: r.ProfileID.UUID, CompanyID: r.ID}
}

// PostgresBackRefStore implements store.BackRefStore on the UUID[] columns
// of profiles and companies.
type PostgresBackRefStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBackRefStore creates a back-reference store.
func NewPostgresBackRefStore(db store.DBTX, logger *slog.Logger) *PostgresBackRefStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBackRefStore{
		db:     db,
		logger: logger.With(slog.String("component", "backref_store")),
	}
}

var _ store.BackRefStore = (*PostgresBackRefStore)(nil)

func (s *PostgresBackRefStore) WithTx(tx *sqlx.Tx) store.BackRefStore {
	return &PostgresBackRefStore{db: tx, logger: s.logger}
}

// LockParent implements store.BackRefStore.LockParent with SELECT ... FOR UPDATE.
func (s *PostgresBackRefStore) LockParent(
	ctx context.Context,
	list store.RefList,
	parentID uuid.UUID,
) (domain.Ancestry, []uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	target, err := lookupRefSpec(list)
	if err != nil {
		return domain.Ancestry{}, nil, err
	}

	profileColumn := "profile_id"
	if target.parentTable == "profiles" {
		profileColumn = "NULL::uuid AS profile_id"
	}

	var row lockedParentRow
	b := psql.Select("id", "user_id", profileColumn, target.column+" AS refs").
		From(target.parentTable).
		Where(sq.Eq{"id": parentID}).
		Suffix("FOR UPDATE")
	if err := getOne(ctx, s.db, b, &row); err != nil {
		return domain.Ancestry{}, nil, mapNotFound(err, list.NotFound())
	}

	return row.lineage(), parseUUIDArray(log, row.Refs), nil
}

// SaveRefs implements store.BackRefStore.SaveRefs
func (s *PostgresBackRefStore) SaveRefs(
	ctx context.Context,
	list store.RefList,
	parentID uuid.UUID,
	ids []uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	target, err := lookupRefSpec(list)
	if err != nil {
		return err
	}

	b := psql.Update(target.parentTable).
		Set(target.column, uuidArray(ids)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": parentID})
	result, err := execQuery(ctx, s.db, b)
	if err != nil {
		log.Error("failed to save reference list",
			slog.String("error", err.Error()),
			slog.String("list", string(list)),
			slog.String("parent_id", parentID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, list.NotFound())
}

// ListParents implements store.BackRefStore.ListParents
func (s *PostgresBackRefStore) ListParents(ctx context.Context, list store.RefList) ([]uuid.UUID, error) {
	target, err := lookupRefSpec(list)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	b := psql.Select("id").From(target.parentTable).OrderBy("created_at ASC")
	if err := getAll(ctx, s.db, b, &ids); err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}

// ListChildIDs implements store.BackRefStore.ListChildIDs
func (s *PostgresBackRefStore) ListChildIDs(
	ctx context.Context,
	list store.RefList,
	parentID uuid.UUID,
) ([]uuid.UUID, error) {
	target, err := lookupRefSpec(list)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	b := psql.Select("id").
		From(target.childTable).
		Where(sq.Eq{target.parentColumn: parentID}).
		OrderBy("created_at ASC")
	if err := getAll(ctx, s.db, b, &ids); err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}
