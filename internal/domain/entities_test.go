package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewProfile(t *testing.T) {
	user := uuid.New()
	p, err := NewProfile(user, "Bob", "e")
	require.NoError(t, err)
	assert.Equal(t, user, p.UserID)
	assert.Empty(t, p.Companies)
	assert.NotNil(t, p.Companies)

	_, err = NewProfile(user, "", "e")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewProfile(uuid.Nil, "Bob", "e")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompanyStampCopiesLineage(t *testing.T) {
	parent := Ancestry{UserID: uuid.New(), ProfileID: uuid.New()}
	spoofed := uuid.New()
	c := &Company{
		ID:          spoofed,
		CompanyName: "FakeBook",
		Website:     "fakebook.com",
		UserID:      uuid.New(),
		Contacts:    []uuid.UUID{uuid.New()},
	}

	c.Stamp(parent)

	assert.NotEqual(t, spoofed, c.ID)
	assert.Equal(t, parent.UserID, c.UserID)
	assert.Equal(t, parent.ProfileID, c.ProfileID)
	assert.Empty(t, c.Contacts)
	assert.Empty(t, c.JobPosting)
	assert.Empty(t, c.Events)
	require.NoError(t, c.Validate())

	lineage := c.Lineage()
	assert.Equal(t, Ancestry{UserID: parent.UserID, ProfileID: parent.ProfileID, CompanyID: c.ID}, lineage)
}

func TestCompanyValidateRequiresName(t *testing.T) {
	c := &Company{Website: "fakebook.com"}
	c.Stamp(Ancestry{UserID: uuid.New(), ProfileID: uuid.New()})

	err := c.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "companyName", ve.Field)
}

func TestChildStampMatchesCompanyLineage(t *testing.T) {
	company := &Company{ID: uuid.New(), UserID: uuid.New(), ProfileID: uuid.New()}
	lineage := company.Lineage()

	contact := &Contact{Name: "Ann"}
	contact.Stamp(lineage)
	job := &Job{Title: "Dev", Link: "https://jobs/1", Status: "applied", Type: "full-time"}
	job.Stamp(lineage)
	event := &Event{EventType: "interview", EventTitle: "Onsite", EventDate: time.Now()}
	event.Stamp(lineage)

	for _, rec := range []Owned{contact, job, event} {
		assert.Equal(t, lineage, rec.Owner())
	}
	assert.NotNil(t, job.Tags)
	assert.NoError(t, contact.Validate())
	assert.NoError(t, job.Validate())
	assert.NoError(t, event.Validate())
}

func TestEventValidateRequiresDate(t *testing.T) {
	event := &Event{EventType: "interview", EventTitle: "Onsite"}
	event.Stamp(Ancestry{UserID: uuid.New(), ProfileID: uuid.New(), CompanyID: uuid.New()})
	assert.ErrorIs(t, event.Validate(), ErrValidation)
}

func TestPatches(t *testing.T) {
	t.Run("empty patch is rejected", func(t *testing.T) {
		assert.ErrorIs(t, ProfilePatch{}.Validate(), ErrEmptyPatch)
		assert.ErrorIs(t, CompanyPatch{}.Validate(), ErrEmptyPatch)
		assert.ErrorIs(t, ContactPatch{}.Validate(), ErrEmptyPatch)
		assert.ErrorIs(t, JobPatch{}.Validate(), ErrEmptyPatch)
		assert.ErrorIs(t, EventPatch{}.Validate(), ErrEmptyPatch)
	})

	t.Run("blank required field is rejected", func(t *testing.T) {
		assert.ErrorIs(t, CompanyPatch{CompanyName: strPtr("")}.Validate(), ErrValidation)
		assert.ErrorIs(t, JobPatch{Link: strPtr("")}.Validate(), ErrValidation)
		zero := time.Time{}
		assert.ErrorIs(t, EventPatch{EventDate: &zero}.Validate(), ErrValidation)
	})

	t.Run("optional field may be cleared", func(t *testing.T) {
		assert.NoError(t, CompanyPatch{CompanyNotes: strPtr("")}.Validate())
	})

	t.Run("apply leaves unmentioned fields and ancestry unchanged", func(t *testing.T) {
		c := &Company{CompanyName: "FakeBook", Website: "fakebook.com", City: "Austin"}
		c.Stamp(Ancestry{UserID: uuid.New(), ProfileID: uuid.New()})
		before := *c

		CompanyPatch{CompanyName: strPtr("FaceBook")}.Apply(c)

		assert.Equal(t, "FaceBook", c.CompanyName)
		assert.Equal(t, before.Website, c.Website)
		assert.Equal(t, before.City, c.City)
		assert.Equal(t, before.Owner(), c.Owner())
		assert.Equal(t, before.ID, c.ID)
	})

	t.Run("job tags replace the list", func(t *testing.T) {
		j := &Job{Tags: []string{"go"}}
		tags := []string{"remote", "senior"}
		JobPatch{Tags: &tags}.Apply(j)
		assert.Equal(t, []string{"remote", "senior"}, j.Tags)
	})
}
