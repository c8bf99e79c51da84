package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer a profile is tracking. It keeps back-reference
// lists of its contacts, job postings and events.
type Company struct {
	ID            uuid.UUID   `json:"id"`
	CompanyName   string      `json:"companyName"   validate:"required"`
	Website       string      `json:"website"       validate:"required"`
	StreetAddress string      `json:"streetAddress"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	Zip           string      `json:"zip"`
	Phone         string      `json:"phone"`
	CompanyNotes  string      `json:"companyNotes"`
	UserID        uuid.UUID   `json:"userId"        validate:"required"`
	ProfileID     uuid.UUID   `json:"profileId"     validate:"required"`
	Contacts      []uuid.UUID `json:"contacts"`
	JobPosting    []uuid.UUID `json:"jobPosting"`
	Events        []uuid.UUID `json:"events"`
	CreatedAt     time.Time   `json:"created"`
	UpdatedAt     time.Time   `json:"updated"`
}

// Stamp prepares a new company for insertion under the profile whose
// lineage is parent: it assigns a fresh ID, copies the ancestor links and
// starts with empty back-reference lists.
func (c *Company) Stamp(parent Ancestry) {
	now := time.Now().UTC()
	c.ID = uuid.New()
	c.UserID = parent.UserID
	c.ProfileID = parent.ProfileID
	c.Contacts = []uuid.UUID{}
	c.JobPosting = []uuid.UUID{}
	c.Events = []uuid.UUID{}
	c.CreatedAt = now
	c.UpdatedAt = now
}

// Validate checks required fields.
func (c *Company) Validate() error {
	return validateStruct(c)
}

// Owner returns the user and profile links.
func (c *Company) Owner() Ancestry {
	return Ancestry{UserID: c.UserID, ProfileID: c.ProfileID}
}

// Lineage is the chain stamped onto contacts, jobs and events.
func (c *Company) Lineage() Ancestry {
	return Ancestry{UserID: c.UserID, ProfileID: c.ProfileID, CompanyID: c.ID}
}

// CompanyPatch is a partial company update.
type CompanyPatch struct {
	CompanyName   *string `json:"companyName"   validate:"omitempty,min=1"`
	Website       *string `json:"website"       validate:"omitempty,min=1"`
	StreetAddress *string `json:"streetAddress"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Zip           *string `json:"zip"`
	Phone         *string `json:"phone"`
	CompanyNotes  *string `json:"companyNotes"`
}

func (p CompanyPatch) IsEmpty() bool {
	return p.CompanyName == nil && p.Website == nil && p.StreetAddress == nil &&
		p.City == nil && p.State == nil && p.Zip == nil && p.Phone == nil &&
		p.CompanyNotes == nil
}

func (p CompanyPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	return validateStruct(p)
}

func (p CompanyPatch) Apply(c *Company) {
	setString(&c.CompanyName, p.CompanyName)
	setString(&c.Website, p.Website)
	setString(&c.StreetAddress, p.StreetAddress)
	setString(&c.City, p.City)
	setString(&c.State, p.State)
	setString(&c.Zip, p.Zip)
	setString(&c.Phone, p.Phone)
	setString(&c.CompanyNotes, p.CompanyNotes)
	c.UpdatedAt = time.Now().UTC()
}
