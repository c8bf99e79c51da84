package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a job seeker's profile. It owns companies through the
// Companies back-reference list.
type Profile struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"      validate:"required"`
	Email     string      `json:"email"     validate:"required"`
	UserID    uuid.UUID   `json:"userId"    validate:"required"`
	Companies []uuid.UUID `json:"companies"`
	CreatedAt time.Time   `json:"created"`
	UpdatedAt time.Time   `json:"updated"`
}

// NewProfile creates a profile owned by userID.
func NewProfile(userID uuid.UUID, name, email string) (*Profile, error) {
	now := time.Now().UTC()
	p := &Profile{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		UserID:    userID,
		Companies: []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks required fields.
func (p *Profile) Validate() error {
	return validateStruct(p)
}

// Owner returns the user link.
func (p *Profile) Owner() Ancestry {
	return Ancestry{UserID: p.UserID}
}

// Lineage is the chain stamped onto companies created under this profile.
func (p *Profile) Lineage() Ancestry {
	return Ancestry{UserID: p.UserID, ProfileID: p.ID}
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Name  *string `json:"name"  validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,min=1"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}

// Validate rejects empty patches and blank required fields.
func (p ProfilePatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	return validateStruct(p)
}

// Apply copies the set fields onto profile.
func (p ProfilePatch) Apply(profile *Profile) {
	setString(&profile.Name, p.Name)
	setString(&profile.Email, p.Email)
	profile.UpdatedAt = time.Now().UTC()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
