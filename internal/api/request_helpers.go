package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
)

// Path parameter names.
const (
	paramProfileID = "profileId"
	paramCompanyID = "companyId"
	paramContactID = "contactId"
	paramJobID     = "jobId"
	paramEventID   = "eventId"
)

// getPathUUID parses a UUID path parameter. A missing or malformed value
// wraps domain.ErrInvalidID, which is reported as not found.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	return domain.ParseID(chi.URLParam(r, paramName))
}

// claimedAncestry builds the ownership chain a request claims: the
// authenticated user plus the ancestor IDs named in the path. Pass no
// params for user-level routes, paramProfileID for profile-scoped routes
// and both for company-scoped routes.
func claimedAncestry(r *http.Request, params ...string) (domain.Ancestry, error) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		return domain.Ancestry{}, domain.ErrUnauthorized
	}

	claimed := domain.Ancestry{UserID: userID}
	for _, p := range params {
		id, err := getPathUUID(r, p)
		if err != nil {
			return domain.Ancestry{}, err
		}
		switch p {
		case paramProfileID:
			claimed.ProfileID = id
		case paramCompanyID:
			claimed.CompanyID = id
		}
	}
	return claimed, nil
}

// claimedWithID is claimedAncestry plus the record ID named by idParam.
func claimedWithID(r *http.Request, idParam string, params ...string) (domain.Ancestry, uuid.UUID, error) {
	claimed, err := claimedAncestry(r, params...)
	if err != nil {
		return domain.Ancestry{}, uuid.Nil, err
	}
	id, err := getPathUUID(r, idParam)
	if err != nil {
		return domain.Ancestry{}, uuid.Nil, err
	}
	return claimed, id, nil
}

// respond writes v as JSON, or the error response when err is set.
func respond(w http.ResponseWriter, r *http.Request, v interface{}, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, v)
}

// respondDeleted writes 204, or the error response when err is set.
func respondDeleted(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}
