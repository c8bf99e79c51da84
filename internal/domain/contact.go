package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a person at a company.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"      validate:"required"`
	JobTitle  string    `json:"jobTitle"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LinkedIn  string    `json:"linkedIn"`
	Notes     string    `json:"notes"`
	UserID    uuid.UUID `json:"userId"    validate:"required"`
	ProfileID uuid.UUID `json:"profileId" validate:"required"`
	CompanyID uuid.UUID `json:"companyId" validate:"required"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// Stamp assigns a fresh ID and the company lineage to a new contact.
func (c *Contact) Stamp(parent Ancestry) {
	now := time.Now().UTC()
	c.ID = uuid.New()
	c.UserID = parent.UserID
	c.ProfileID = parent.ProfileID
	c.CompanyID = parent.CompanyID
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Contact) Validate() error {
	return validateStruct(c)
}

func (c *Contact) Owner() Ancestry {
	return Ancestry{UserID: c.UserID, ProfileID: c.ProfileID, CompanyID: c.CompanyID}
}

// ContactPatch is a partial contact update.
type ContactPatch struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	JobTitle *string `json:"jobTitle"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedIn"`
	Notes    *string `json:"notes"`
}

func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil && p.JobTitle == nil && p.Email == nil &&
		p.Phone == nil && p.LinkedIn == nil && p.Notes == nil
}

func (p ContactPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	return validateStruct(p)
}

func (p ContactPatch) Apply(c *Contact) {
	setString(&c.Name, p.Name)
	setString(&c.JobTitle, p.JobTitle)
	setString(&c.Email, p.Email)
	setString(&c.Phone, p.Phone)
	setString(&c.LinkedIn, p.LinkedIn)
	setString(&c.Notes, p.Notes)
	c.UpdatedAt = time.Now().UTC()
}
