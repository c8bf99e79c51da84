package api

import (
	"time"

	"github.com/phrazzld/job-seeker-api/internal/domain"
)

// SignupRequest defines the payload for POST /api/signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// CreateProfileRequest defines the payload for creating a profile.
type CreateProfileRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
}

// CreateCompanyRequest defines the payload for creating a company.
type CreateCompanyRequest struct {
	CompanyName   string `json:"companyName"   validate:"required"`
	Website       string `json:"website"       validate:"required"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Phone         string `json:"phone"`
	CompanyNotes  string `json:"companyNotes"`
}

func (req CreateCompanyRequest) toDomain() *domain.Company {
	return &domain.Company{
		CompanyName:   req.CompanyName,
		Website:       req.Website,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		Phone:         req.Phone,
		CompanyNotes:  req.CompanyNotes,
	}
}

// CreateContactRequest defines the payload for creating a contact.
type CreateContactRequest struct {
	Name     string `json:"name"     validate:"required"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedIn"`
	Notes    string `json:"notes"`
}

func (req CreateContactRequest) toDomain() *domain.Contact {
	return &domain.Contact{
		Name:     req.Name,
		JobTitle: req.JobTitle,
		Email:    req.Email,
		Phone:    req.Phone,
		LinkedIn: req.LinkedIn,
		Notes:    req.Notes,
	}
}

// CreateJobRequest defines the payload for creating a job posting.
type CreateJobRequest struct {
	Title  string   `json:"title"  validate:"required"`
	Link   string   `json:"link"   validate:"required"`
	Status string   `json:"status" validate:"required"`
	Type   string   `json:"type"   validate:"required"`
	Notes  string   `json:"notes"`
	Tags   []string `json:"tags"`
}

func (req CreateJobRequest) toDomain() *domain.Job {
	return &domain.Job{
		Title:  req.Title,
		Link:   req.Link,
		Status: req.Status,
		Type:   req.Type,
		Notes:  req.Notes,
		Tags:   req.Tags,
	}
}

// CreateEventRequest defines the payload for creating an event.
// EventDate is RFC 3339.
type CreateEventRequest struct {
	EventType  string    `json:"eventType"  validate:"required"`
	EventTitle string    `json:"eventTitle" validate:"required"`
	EventDate  time.Time `json:"eventDate"  validate:"required"`
	EventNotes string    `json:"eventNotes"`
}

func (req CreateEventRequest) toDomain() *domain.Event {
	return &domain.Event{
		EventType:  req.EventType,
		EventTitle: req.EventTitle,
		EventDate:  req.EventDate.UTC(),
		EventNotes: req.EventNotes,
	}
}
