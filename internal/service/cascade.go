package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// CreateChildFn inserts a child stamped with lineage and returns its ID.
// It must use tx for every write.
type CreateChildFn func(ctx context.Context, tx *sqlx.Tx, lineage domain.Ancestry) (uuid.UUID, error)

// RemoveChildFn deletes a child row scoped to its parent using tx.
type RemoveChildFn func(ctx context.Context, tx *sqlx.Tx) error

// CascadeManager adds and removes children together with the ID list kept
// on their parent. Both writes happen in one transaction while the parent
// row is locked, so concurrent mutations of the same list are serialised.
type CascadeManager struct {
	transactor store.Transactor
	refs       store.BackRefStore
	logger     *slog.Logger
}

// NewCascadeManager creates a CascadeManager.
func NewCascadeManager(transactor store.Transactor, refs store.BackRefStore, logger *slog.Logger) *CascadeManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &CascadeManager{
		transactor: transactor,
		refs:       refs,
		logger:     logger.With(slog.String("component", "cascade_manager")),
	}
}

// AddChild creates a child under parentID and appends its ID to list.
// claimed must match the parent's lineage, otherwise domain.ErrNotOwned is
// returned and nothing is written.
func (m *CascadeManager) AddChild(
	ctx context.Context,
	list store.RefList,
	parentID uuid.UUID,
	claimed domain.Ancestry,
	create CreateChildFn,
) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	return m.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		refs := m.refs.WithTx(tx)

		lineage, ids, err := refs.LockParent(ctx, list, parentID)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwnership(claimed, lineage); err != nil {
			log.Debug("refusing to add child to parent of another owner",
				slog.String("list", string(list)),
				slog.String("parent_id", parentID.String()))
			return err
		}

		childID, err := create(ctx, tx, lineage)
		if err != nil {
			return err
		}

		next, added := appendUnique(ids, childID)
		if !added {
			return nil
		}
		if err := refs.SaveRefs(ctx, list, parentID, next); err != nil {
			return err
		}

		log.Debug("child added",
			slog.String("list", string(list)),
			slog.String("parent_id", parentID.String()),
			slog.String("child_id", childID.String()))
		return nil
	})
}

// RemoveChild removes childID from list and then calls remove to delete the
// child row. An ID that is not in the list leaves the list untouched; remove
// is still called so a stray row under the parent is cleaned up.
func (m *CascadeManager) RemoveChild(
	ctx context.Context,
	list store.RefList,
	parentID, childID uuid.UUID,
	claimed domain.Ancestry,
	remove RemoveChildFn,
) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	return m.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		refs := m.refs.WithTx(tx)

		lineage, ids, err := refs.LockParent(ctx, list, parentID)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwnership(claimed, lineage); err != nil {
			return err
		}

		if next, removed := removeID(ids, childID); removed {
			if err := refs.SaveRefs(ctx, list, parentID, next); err != nil {
				return err
			}
		}

		if err := remove(ctx, tx); err != nil {
			return err
		}

		log.Debug("child removed",
			slog.String("list", string(list)),
			slog.String("parent_id", parentID.String()),
			slog.String("child_id", childID.String()))
		return nil
	})
}

// appendUnique returns ids with id appended unless already present.
func appendUnique(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	for _, existing := range ids {
		if existing == id {
			return ids, false
		}
	}
	next := make([]uuid.UUID, 0, len(ids)+1)
	next = append(next, ids...)
	return append(next, id), true
}

// removeID returns a copy of ids without any occurrence of id.
func removeID(ids []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	next := make([]uuid.UUID, 0, len(ids))
	removed := false
	for _, existing := range ids {
		if existing == id {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	return next, removed
}
