package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job is a job posting at a company. Status is free text chosen by the
// client; the API attaches no meaning to it.
type Job struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"     validate:"required"`
	Link      string    `json:"link"      validate:"required"`
	Status    string    `json:"status"    validate:"required"`
	Type      string    `json:"type"      validate:"required"`
	Notes     string    `json:"notes"`
	Tags      []string  `json:"tags"`
	UserID    uuid.UUID `json:"userId"    validate:"required"`
	ProfileID uuid.UUID `json:"profileId" validate:"required"`
	CompanyID uuid.UUID `json:"companyId" validate:"required"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// Stamp assigns a fresh ID and the company lineage to a new job.
func (j *Job) Stamp(parent Ancestry) {
	now := time.Now().UTC()
	j.ID = uuid.New()
	j.UserID = parent.UserID
	j.ProfileID = parent.ProfileID
	j.CompanyID = parent.CompanyID
	if j.Tags == nil {
		j.Tags = []string{}
	}
	j.CreatedAt = now
	j.UpdatedAt = now
}

func (j *Job) Validate() error {
	return validateStruct(j)
}

func (j *Job) Owner() Ancestry {
	return Ancestry{UserID: j.UserID, ProfileID: j.ProfileID, CompanyID: j.CompanyID}
}

// JobPatch is a partial job update. A non-nil Tags replaces the whole list.
type JobPatch struct {
	Title  *string   `json:"title"  validate:"omitempty,min=1"`
	Link   *string   `json:"link"   validate:"omitempty,min=1"`
	Status *string   `json:"status" validate:"omitempty,min=1"`
	Type   *string   `json:"type"   validate:"omitempty,min=1"`
	Notes  *string   `json:"notes"`
	Tags   *[]string `json:"tags"`
}

func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Link == nil && p.Status == nil &&
		p.Type == nil && p.Notes == nil && p.Tags == nil
}

func (p JobPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	return validateStruct(p)
}

func (p JobPatch) Apply(j *Job) {
	setString(&j.Title, p.Title)
	setString(&j.Link, p.Link)
	setString(&j.Status, p.Status)
	setString(&j.Type, p.Type)
	setString(&j.Notes, p.Notes)
	if p.Tags != nil {
		j.Tags = append([]string{}, (*p.Tags)...)
	}
	j.UpdatedAt = time.Now().UTC()
}
