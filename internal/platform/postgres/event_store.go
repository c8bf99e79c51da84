package postgres

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

var eventColumns = []string{
	"id", "user_id", "profile_id", "company_id",
	"event_type", "event_title", "event_date", "event_notes",
	"created_at", "updated_at",
}

type eventRow struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	ProfileID  uuid.UUID `db:"profile_id"`
	CompanyID  uuid.UUID `db:"company_id"`
	EventType  string    `db:"event_type"`
	EventTitle string    `db:"event_title"`
	EventDate  time.Time `db:"event_date"`
	EventNotes string    `db:"event_notes"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r *eventRow) toDomain() *domain.Event {
	return &domain.Event{
		ID:         r.ID,
		UserID:     r.UserID,
		ProfileID:  r.ProfileID,
		CompanyID:  r.CompanyID,
		EventType:  r.EventType,
		EventTitle: r.EventTitle,
		EventDate:  r.EventDate.UTC(),
		EventNotes: r.EventNotes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// PostgresEventStore implements store.EventStore.
type PostgresEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEventStore creates an event store.
func NewPostgresEventStore(db store.DBTX, logger *slog.Logger) *PostgresEventStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "event_store")),
	}
}

var _ store.EventStore = (*PostgresEventStore)(nil)

func (s *PostgresEventStore) WithTx(tx *sqlx.Tx) store.EventStore {
	return &PostgresEventStore{db: tx, logger: s.logger}
}

func (s *PostgresEventStore) Create(ctx context.Context, e *domain.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	b := psql.Insert("events").
		Columns(eventColumns...).
		Values(
			e.ID, e.UserID, e.ProfileID, e.CompanyID,
			e.EventType, e.EventTitle, e.EventDate, e.EventNotes,
			e.CreatedAt, e.UpdatedAt,
		)
	if _, err := execQuery(ctx, s.db, b); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create event",
			slog.String("error", err.Error()),
			slog.String("event_id", e.ID.String()),
			slog.String("company_id", e.CompanyID.String()))
		return MapError(err)
	}
	return nil
}

func (s *PostgresEventStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var row eventRow
	b := psql.Select(eventColumns...).From("events").Where(sq.Eq{"id": id})
	if err := getOne(ctx, s.db, b, &row); err != nil {
		return nil, mapNotFound(err, store.ErrEventNotFound)
	}
	return row.toDomain(), nil
}

func (s *PostgresEventStore) ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]*domain.Event, error) {
	return s.list(ctx, sq.Eq{"user_id": userID, "profile_id": profileID})
}

func (s *PostgresEventStore) ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*domain.Event, error) {
	return s.list(ctx, sq.Eq{"user_id": userID, "company_id": companyID})
}

func (s *PostgresEventStore) list(ctx context.Context, where sq.Eq) ([]*domain.Event, error) {
	var rows []eventRow
	b := psql.Select(eventColumns...).From("events").Where(where).OrderBy("event_date ASC", "created_at ASC")
	if err := getAll(ctx, s.db, b, &rows); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list events",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	events := make([]*domain.Event, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toDomain())
	}
	return events, nil
}

func (s *PostgresEventStore) Update(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (*domain.Event, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	setIfPresent(set, "event_type", patch.EventType)
	setIfPresent(set, "event_title", patch.EventTitle)
	if patch.EventDate != nil {
		set["event_date"] = patch.EventDate.UTC()
	}
	setIfPresent(set, "event_notes", patch.EventNotes)

	var row eventRow
	if err := updateReturning(ctx, s.db, "events", eventColumns, id, set, &row); err != nil {
		return nil, mapNotFound(err, store.ErrEventNotFound)
	}
	return row.toDomain(), nil
}

func (s *PostgresEventStore) Delete(ctx context.Context, id, companyID uuid.UUID) error {
	b := psql.Delete("events").Where(sq.Eq{"id": id, "company_id": companyID})
	if _, err := execQuery(ctx, s.db, b); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete event",
			slog.String("error", err.Error()),
			slog.String("event_id", id.String()))
		return MapError(err)
	}
	return nil
}
