package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Ancestry is an ownership chain User -> Profile -> Company. A nil link means
// the chain does not reach that level.
type Ancestry struct {
	UserID    uuid.UUID
	ProfileID uuid.UUID
	CompanyID uuid.UUID
}

// Owned is implemented by every record that stores its ancestor IDs.
type Owned interface {
	// Owner returns the chain of ancestors stored on the record.
	Owner() Ancestry
}

// Matches reports whether actual satisfies every link claimed by a.
// Unclaimed (nil) links are not compared, except the user link, which must
// always be claimed.
func (a Ancestry) Matches(actual Ancestry) bool {
	if a.UserID == uuid.Nil || a.UserID != actual.UserID {
		return false
	}
	if a.ProfileID != uuid.Nil && a.ProfileID != actual.ProfileID {
		return false
	}
	if a.CompanyID != uuid.Nil && a.CompanyID != actual.CompanyID {
		return false
	}
	return true
}

// VerifyOwnership returns ErrNotOwned unless actual satisfies claimed.
func VerifyOwnership(claimed, actual Ancestry) error {
	if !claimed.Matches(actual) {
		return ErrNotOwned
	}
	return nil
}

// VerifyOwned is VerifyOwnership against a record's stored chain.
func VerifyOwned(claimed Ancestry, rec Owned) error {
	return VerifyOwnership(claimed, rec.Owner())
}

// ParseID parses a record identifier supplied by a client.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
