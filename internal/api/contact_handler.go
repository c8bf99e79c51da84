package api

import (
	"net/http"

	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
)

// ContactHandler serves contacts under
// /api/profile/{profileId}/company/{companyId}.
type ContactHandler struct {
	contacts service.ContactService
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Create handles POST .../company/{companyId}/contact.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req CreateContactRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	c, err := h.contacts.Create(r.Context(), claimed, req.toDomain())
	respond(w, r, c, err)
}

// ListByProfile handles GET /api/profile/{profileId}/allProfileContacts.
func (h *ContactHandler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	contacts, err := h.contacts.ListByProfile(r.Context(), claimed)
	respond(w, r, contacts, err)
}

// ListByCompany handles GET .../company/{companyId}/allCompanyContacts.
func (h *ContactHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	contacts, err := h.contacts.ListByCompany(r.Context(), claimed)
	respond(w, r, contacts, err)
}

// Get handles GET .../company/{companyId}/contact/{contactId}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramContactID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	c, err := h.contacts.Get(r.Context(), claimed, id)
	respond(w, r, c, err)
}

// Update handles PUT .../company/{companyId}/contact/{contactId}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramContactID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var patch domain.ContactPatch
	if err := shared.DecodeJSON(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	c, err := h.contacts.Update(r.Context(), claimed, id, patch)
	respond(w, r, c, err)
}

// Delete handles DELETE .../company/{companyId}/contact/{contactId}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramContactID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondDeleted(w, r, h.contacts.Delete(r.Context(), claimed, id))
}
