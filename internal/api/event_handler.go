package api

import (
	"net/http"

	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
)

// EventHandler serves events under
// /api/profile/{profileId}/company/{companyId}.
type EventHandler struct {
	events service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create handles POST .../company/{companyId}/event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req CreateEventRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	e, err := h.events.Create(r.Context(), claimed, req.toDomain())
	respond(w, r, e, err)
}

// ListByProfile handles GET /api/profile/{profileId}/allProfileEvents.
func (h *EventHandler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	events, err := h.events.ListByProfile(r.Context(), claimed)
	respond(w, r, events, err)
}

// ListByCompany handles GET .../company/{companyId}/allCompanyEvents.
func (h *EventHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	events, err := h.events.ListByCompany(r.Context(), claimed)
	respond(w, r, events, err)
}

// Get handles GET .../company/{companyId}/event/{eventId}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramEventID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	e, err := h.events.Get(r.Context(), claimed, id)
	respond(w, r, e, err)
}

// Update handles PUT .../company/{companyId}/event/{eventId}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramEventID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var patch domain.EventPatch
	if err := shared.DecodeJSON(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	e, err := h.events.Update(r.Context(), claimed, id, patch)
	respond(w, r, e, err)
}

// Delete handles DELETE .../company/{companyId}/event/{eventId}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramEventID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondDeleted(w, r, h.events.Delete(r.Context(), claimed, id))
}
