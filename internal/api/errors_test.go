package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
	"github.com/phrazzld/job-seeker-api/internal/service/auth"
	"github.com/phrazzld/job-seeker-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrEmptyUsername, http.StatusBadRequest},
		{"empty patch", domain.ErrEmptyPatch, http.StatusBadRequest},
		{"bad body", fmt.Errorf("%w: EOF", shared.ErrInvalidBody), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"no user in context", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not found", store.ErrCompanyNotFound, http.StatusNotFound},
		{"not owned", domain.ErrNotOwned, http.StatusNotFound},
		{"malformed id", fmt.Errorf("%w: %q", domain.ErrInvalidID, "abc"), http.StatusNotFound},
		{"duplicate username", store.ErrUsernameExists, http.StatusConflict},
		{"duplicate job link", store.ErrJobLinkExists, http.StatusConflict},
		{
			"wrapped by service",
			&service.ServiceError{Service: "job", Op: "create", Err: store.ErrJobLinkExists},
			http.StatusConflict,
		},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleAPIError_WritesErrorName(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)

	HandleAPIError(w, r, fmt.Errorf("lookup: %w", domain.ErrNotOwned))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFoundError", w.Body.String())
}
