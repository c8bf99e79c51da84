package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// companyRouter mounts the company routes the way the server does, with
// userID standing in for the authentication middleware. A nil userID
// leaves the request unauthenticated.
func companyRouter(svc *mockCompanyService, userID uuid.UUID) http.Handler {
	h := NewCompanyHandler(svc)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != uuid.Nil {
				r = r.WithContext(shared.WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Route("/api/profile/{profileId}/company", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{companyId}", h.Get)
		r.Put("/{companyId}", h.Update)
		r.Delete("/{companyId}", h.Delete)
	})
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCompanyHandler_Create(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	target := "/api/profile/" + profileID.String() + "/company"

	t.Run("passes the claimed ownership chain to the service", func(t *testing.T) {
		var gotClaim domain.Ancestry
		svc := &mockCompanyService{
			CreateFn: func(_ context.Context, claimed domain.Ancestry, c *domain.Company) (*domain.Company, error) {
				gotClaim = claimed
				c.ID = uuid.New()
				c.UserID = claimed.UserID
				c.ProfileID = claimed.ProfileID
				return c, nil
			},
		}

		w := serve(companyRouter(svc, userID), http.MethodPost, target,
			`{"companyName":"FakeBook","website":"fakebook.example"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, domain.Ancestry{UserID: userID, ProfileID: profileID}, gotClaim)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "FakeBook", body["companyName"])
		assert.Equal(t, profileID.String(), body["profileId"])
	})

	t.Run("missing required field", func(t *testing.T) {
		svc := &mockCompanyService{}
		w := serve(companyRouter(svc, userID), http.MethodPost, target, `{"website":"fakebook.example"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.BadRequestError, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &mockCompanyService{}
		w := serve(companyRouter(svc, userID), http.MethodPost, target, `{"companyName":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed profile ID reads as not found", func(t *testing.T) {
		svc := &mockCompanyService{}
		w := serve(companyRouter(svc, userID), http.MethodPost, "/api/profile/not-a-uuid/company",
			`{"companyName":"FakeBook","website":"fakebook.example"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, shared.NotFoundError, w.Body.String())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := &mockCompanyService{}
		w := serve(companyRouter(svc, uuid.Nil), http.MethodPost, target,
			`{"companyName":"FakeBook","website":"fakebook.example"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, shared.UnauthorizedError, w.Body.String())
	})
}

func TestCompanyHandler_ErrorResponses(t *testing.T) {
	userID := uuid.New()
	base := "/api/profile/" + uuid.New().String() + "/company/" + uuid.New().String()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"owned by someone else", domain.ErrNotOwned, http.StatusNotFound, shared.NotFoundError},
		{"missing", store.ErrCompanyNotFound, http.StatusNotFound, shared.NotFoundError},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError, shared.InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCompanyService{
				GetFn: func(context.Context, domain.Ancestry, uuid.UUID) (*domain.Company, error) {
					return nil, tt.err
				},
				DeleteFn: func(context.Context, domain.Ancestry, uuid.UUID) error {
					return tt.err
				},
			}
			h := companyRouter(svc, userID)

			w := serve(h, http.MethodGet, base, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())

			w = serve(h, http.MethodDelete, base, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestCompanyHandler_Update(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()
	target := "/api/profile/" + uuid.New().String() + "/company/" + companyID.String()

	t.Run("decodes the partial update", func(t *testing.T) {
		svc := &mockCompanyService{
			UpdateFn: func(
				_ context.Context,
				_ domain.Ancestry,
				id uuid.UUID,
				patch domain.CompanyPatch,
			) (*domain.Company, error) {
				if err := patch.Validate(); err != nil {
					return nil, err
				}
				c := &domain.Company{ID: id, CompanyName: "FakeBook", Website: "fakebook.example"}
				patch.Apply(c)
				return c, nil
			},
		}

		w := serve(companyRouter(svc, userID), http.MethodPut, target, `{"city":"Springfield"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Springfield", body["city"])
		assert.Equal(t, "FakeBook", body["companyName"])
		assert.Equal(t, companyID.String(), body["id"])
	})

	t.Run("empty update", func(t *testing.T) {
		svc := &mockCompanyService{
			UpdateFn: func(
				_ context.Context,
				_ domain.Ancestry,
				_ uuid.UUID,
				patch domain.CompanyPatch,
			) (*domain.Company, error) {
				return nil, patch.Validate()
			},
		}

		w := serve(companyRouter(svc, userID), http.MethodPut, target, `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.BadRequestError, w.Body.String())
	})
}

func TestCompanyHandler_DeleteAndList(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	target := "/api/profile/" + profileID.String() + "/company"

	svc := &mockCompanyService{
		DeleteFn: func(context.Context, domain.Ancestry, uuid.UUID) error { return nil },
		ListByProfileFn: func(context.Context, domain.Ancestry) ([]*domain.Company, error) {
			return []*domain.Company{}, nil
		},
	}
	h := companyRouter(svc, userID)

	w := serve(h, http.MethodDelete, target+"/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = serve(h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
