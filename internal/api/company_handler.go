package api

import (
	"net/http"

	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
)

// CompanyHandler serves /api/profile/{profileId}/company.
type CompanyHandler struct {
	companies service.CompanyService
}

// NewCompanyHandler creates a CompanyHandler.
func NewCompanyHandler(companies service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// Create handles POST /api/profile/{profileId}/company.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req CreateCompanyRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	c, err := h.companies.Create(r.Context(), claimed, req.toDomain())
	respond(w, r, c, err)
}

// List handles GET /api/profile/{profileId}/company.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	companies, err := h.companies.ListByProfile(r.Context(), claimed)
	respond(w, r, companies, err)
}

// Get handles GET /api/profile/{profileId}/company/{companyId}.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramCompanyID, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	c, err := h.companies.Get(r.Context(), claimed, id)
	respond(w, r, c, err)
}

// Update handles PUT /api/profile/{profileId}/company/{companyId}.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramCompanyID, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var patch domain.CompanyPatch
	if err := shared.DecodeJSON(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	c, err := h.companies.Update(r.Context(), claimed, id, patch)
	respond(w, r, c, err)
}

// Delete handles DELETE /api/profile/{profileId}/company/{companyId}.
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramCompanyID, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondDeleted(w, r, h.companies.Delete(r.Context(), claimed, id))
}
