package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// psql builds queries with Postgres positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func getOne(ctx context.Context, db store.DBTX, b sq.Sqlizer, dest interface{}) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return db.GetContext(ctx, dest, query, args...)
}

func getAll(ctx context.Context, db store.DBTX, b sq.Sqlizer, dest interface{}) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return db.SelectContext(ctx, dest, query, args...)
}

func execQuery(ctx context.Context, db store.DBTX, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return db.ExecContext(ctx, query, args...)
}

// updateReturning applies set to the row with the given id and scans the
// updated row into dest. updated_at is always bumped.
func updateReturning(
	ctx context.Context,
	db store.DBTX,
	table string,
	columns []string,
	id uuid.UUID,
	set map[string]interface{},
	dest interface{},
) error {
	set["updated_at"] = time.Now().UTC()
	b := psql.Update(table).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
	return getOne(ctx, db, b, dest)
}

// setIfPresent adds column to set when v is non-nil.
func setIfPresent(set map[string]interface{}, column string, v *string) {
	if v != nil {
		set[column] = *v
	}
}

// uuidArray encodes ids for a UUID[] column.
func uuidArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// parseUUIDArray decodes a UUID[] column. Malformed entries are dropped and
// logged. They stay in the column until the next cascade write on the
// parent saves the cleaned list; the reconciler never sees them.
func parseUUIDArray(log *slog.Logger, raw pq.StringArray) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			log.Warn("dropping malformed id from reference list", slog.String("value", s))
			continue
		}
		out = append(out, id)
	}
	return out
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
