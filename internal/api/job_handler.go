package api

import (
	"net/http"

	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
)

// JobHandler serves job postings under
// /api/profile/{profileId}/company/{companyId}.
type JobHandler struct {
	jobs service.JobService
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobs service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create handles POST .../company/{companyId}/job.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req CreateJobRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	j, err := h.jobs.Create(r.Context(), claimed, req.toDomain())
	respond(w, r, j, err)
}

// ListByProfile handles GET /api/profile/{profileId}/allProfileJobs.
func (h *JobHandler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	jobs, err := h.jobs.ListByProfile(r.Context(), claimed)
	respond(w, r, jobs, err)
}

// ListByCompany handles GET .../company/{companyId}/allCompanyJobs.
func (h *JobHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	claimed, err := claimedAncestry(r, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	jobs, err := h.jobs.ListByCompany(r.Context(), claimed)
	respond(w, r, jobs, err)
}

// Get handles GET .../company/{companyId}/job/{jobId}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramJobID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	j, err := h.jobs.Get(r.Context(), claimed, id)
	respond(w, r, j, err)
}

// Update handles PUT .../company/{companyId}/job/{jobId}.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramJobID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var patch domain.JobPatch
	if err := shared.DecodeJSON(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	j, err := h.jobs.Update(r.Context(), claimed, id, patch)
	respond(w, r, j, err)
}

// Delete handles DELETE .../company/{companyId}/job/{jobId}.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claimed, id, err := claimedWithID(r, paramJobID, paramProfileID, paramCompanyID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondDeleted(w, r, h.jobs.Delete(r.Context(), claimed, id))
}
