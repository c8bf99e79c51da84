package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// ReconcileReport summarises a reconcile run.
type ReconcileReport struct {
	ListsScanned      int `json:"listsScanned"`
	ListsRepaired     int `json:"listsRepaired"`
	DanglingRemoved   int `json:"danglingRemoved"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
	OrphansLinked     int `json:"orphansLinked"`
}

// listRepair is the outcome of reconciling one parent list.
type listRepair struct {
	ids        []uuid.UUID
	dangling   int
	duplicates int
	orphans    int
}

func (r listRepair) changed() bool {
	return r.dangling+r.duplicates+r.orphans > 0
}

// reconcileList rebuilds a back-reference list from the child rows that
// actually exist under the parent. Listed IDs keep their order; children
// missing from the list are appended in the order given.
func reconcileList(listed, children []uuid.UUID) listRepair {
	exists := make(map[uuid.UUID]bool, len(children))
	for _, id := range children {
		exists[id] = true
	}

	var r listRepair
	seen := make(map[uuid.UUID]bool, len(listed))
	r.ids = make([]uuid.UUID, 0, len(children))
	for _, id := range listed {
		switch {
		case !exists[id]:
			r.dangling++
		case seen[id]:
			r.duplicates++
		default:
			seen[id] = true
			r.ids = append(r.ids, id)
		}
	}
	for _, id := range children {
		if !seen[id] {
			seen[id] = true
			r.ids = append(r.ids, id)
			r.orphans++
		}
	}
	return r
}

// Reconciler repairs back-reference lists so that every list holds exactly
// the IDs of the children stored under its parent.
type Reconciler struct {
	transactor store.Transactor
	refs       store.BackRefStore
	logger     *slog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(transactor store.Transactor, refs store.BackRefStore, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		transactor: transactor,
		refs:       refs,
		logger:     logger.With(slog.String("component", "reconciler")),
	}
}

// Reconcile walks every list of every parent. Each parent is repaired in
// its own transaction; a parent deleted during the run is skipped.
func (r *Reconciler) Reconcile(ctx context.Context) (ReconcileReport, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)
	var report ReconcileReport

	for _, list := range store.RefLists {
		parents, err := r.refs.ListParents(ctx, list)
		if err != nil {
			return report, wrapErr("reconcile", string(list), err)
		}

		for _, parentID := range parents {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			repair, err := r.reconcileParent(ctx, list, parentID)
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if err != nil {
				return report, wrapErr("reconcile", string(list), err)
			}

			report.ListsScanned++
			if repair.changed() {
				report.ListsRepaired++
				report.DanglingRemoved += repair.dangling
				report.DuplicatesRemoved += repair.duplicates
				report.OrphansLinked += repair.orphans
				log.Info("reference list repaired",
					slog.String("list", string(list)),
					slog.String("parent_id", parentID.String()),
					slog.Int("dangling", repair.dangling),
					slog.Int("duplicates", repair.duplicates),
					slog.Int("orphans", repair.orphans))
			}
		}
	}

	log.Info("reconcile finished",
		slog.Int("lists_scanned", report.ListsScanned),
		slog.Int("lists_repaired", report.ListsRepaired))
	return report, nil
}

func (r *Reconciler) reconcileParent(ctx context.Context, list store.RefList, parentID uuid.UUID) (listRepair, error) {
	var repair listRepair
	err := r.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		refs := r.refs.WithTx(tx)

		_, listed, err := refs.LockParent(ctx, list, parentID)
		if err != nil {
			return err
		}
		children, err := refs.ListChildIDs(ctx, list, parentID)
		if err != nil {
			return err
		}

		repair = reconcileList(listed, children)
		if !repair.changed() {
			return nil
		}
		return refs.SaveRefs(ctx, list, parentID, repair.ids)
	})
	return repair, err
}
