package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a dated interaction with a company, such as an interview.
type Event struct {
	ID         uuid.UUID `json:"id"`
	EventType  string    `json:"eventType"  validate:"required"`
	EventTitle string    `json:"eventTitle" validate:"required"`
	EventDate  time.Time `json:"eventDate"  validate:"required"`
	EventNotes string    `json:"eventNotes"`
	UserID     uuid.UUID `json:"userId"     validate:"required"`
	ProfileID  uuid.UUID `json:"profileId"  validate:"required"`
	CompanyID  uuid.UUID `json:"companyId"  validate:"required"`
	CreatedAt  time.Time `json:"created"`
	UpdatedAt  time.Time `json:"updated"`
}

// Stamp assigns a fresh ID and the company lineage to a new event.
func (e *Event) Stamp(parent Ancestry) {
	now := time.Now().UTC()
	e.ID = uuid.New()
	e.UserID = parent.UserID
	e.ProfileID = parent.ProfileID
	e.CompanyID = parent.CompanyID
	e.CreatedAt = now
	e.UpdatedAt = now
}

func (e *Event) Validate() error {
	return validateStruct(e)
}

func (e *Event) Owner() Ancestry {
	return Ancestry{UserID: e.UserID, ProfileID: e.ProfileID, CompanyID: e.CompanyID}
}

// EventPatch is a partial event update.
type EventPatch struct {
	EventType  *string    `json:"eventType"  validate:"omitempty,min=1"`
	EventTitle *string    `json:"eventTitle" validate:"omitempty,min=1"`
	EventDate  *time.Time `json:"eventDate"`
	EventNotes *string    `json:"eventNotes"`
}

func (p EventPatch) IsEmpty() bool {
	return p.EventType == nil && p.EventTitle == nil && p.EventDate == nil && p.EventNotes == nil
}

func (p EventPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.EventDate != nil && p.EventDate.IsZero() {
		return NewValidationError("eventDate", "is required", nil)
	}
	return validateStruct(p)
}

func (p EventPatch) Apply(e *Event) {
	setString(&e.EventType, p.EventType)
	setString(&e.EventTitle, p.EventTitle)
	if p.EventDate != nil {
		e.EventDate = p.EventDate.UTC()
	}
	setString(&e.EventNotes, p.EventNotes)
	e.UpdatedAt = time.Now().UTC()
}
