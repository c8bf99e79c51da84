package api

import (
	"net/http"

	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
)

// ProfileHandler serves /api/profile.
type ProfileHandler struct {
	profiles service.ProfileService
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Create handles POST /api/profile. The owner is the authenticated user.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req CreateProfileRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	p, err := h.profiles.Create(r.Context(), claimed, req.Name, req.Email)
	respond(w, r, p, err)
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	profiles, err := h.profiles.List(r.Context(), claimed)
	respond(w, r, profiles, err)
}

// Get handles GET /api/profile/{profileId}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	p, err := h.profiles.Get(r.Context(), claimed, id)
	respond(w, r, p, err)
}

// Update handles PUT /api/profile/{profileId}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var patch domain.ProfilePatch
	if err := shared.DecodeJSON(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	p, err := h.profiles.Update(r.Context(), claimed, id, patch)
	respond(w, r, p, err)
}

// Delete handles DELETE /api/profile/{profileId}.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondDeleted(w, r, h.profiles.Delete(r.Context(), claimed, id))
}
