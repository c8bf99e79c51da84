package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
)

// RefList names a parent's list of child IDs.
type RefList string

const (
	ProfileCompanies RefList = "profile.companies"
	CompanyContacts  RefList = "company.contacts"
	CompanyJobs      RefList = "company.jobPosting"
	CompanyEvents    RefList = "company.events"
)

// RefLists is every back-reference list, parents before children.
var RefLists = []RefList{ProfileCompanies, CompanyContacts, CompanyJobs, CompanyEvents}

// NotFound returns the not-found error for the list's parent entity.
func (l RefList) NotFound() error {
	switch l {
	case ProfileCompanies:
		return ErrProfileNotFound
	case CompanyContacts, CompanyJobs, CompanyEvents:
		return ErrCompanyNotFound
	default:
		return fmt.Errorf("%w: unknown list %q", ErrNotFound, string(l))
	}
}

// BackRefStore reads and writes the back-reference lists kept on parent
// records. Mutations must run inside a transaction obtained from WithTx so
// the parent row lock is held until commit.
type BackRefStore interface {
	// LockParent locks the parent row and returns its lineage and the
	// current list. Returns list.NotFound() if the parent does not exist.
	LockParent(ctx context.Context, list RefList, parentID uuid.UUID) (domain.Ancestry, []uuid.UUID, error)

	// SaveRefs replaces the list on the parent.
	SaveRefs(ctx context.Context, list RefList, parentID uuid.UUID, ids []uuid.UUID) error

	// ListParents returns the IDs of every parent that owns list.
	ListParents(ctx context.Context, list RefList) ([]uuid.UUID, error)

	// ListChildIDs returns the IDs of child rows whose parent link is
	// parentID, oldest first.
	ListChildIDs(ctx context.Context, list RefList, parentID uuid.UUID) ([]uuid.UUID, error)

	WithTx(tx *sqlx.Tx) BackRefStore
}
