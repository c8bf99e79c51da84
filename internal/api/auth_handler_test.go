package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
	"github.com/phrazzld/job-seeker-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func signupRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("returns the token as text", func(t *testing.T) {
		var gotUsername, gotPassword string
		accounts := &mockAccountService{
			SignUpFn: func(_ context.Context, username, _, password string) (*domain.User, string, error) {
				gotUsername, gotPassword = username, password
				return &domain.User{ID: uuid.New(), Username: username}, "signed-token", nil
			},
		}
		h := NewAuthHandler(accounts, nil)

		w := httptest.NewRecorder()
		h.Signup(w, signupRequest(`{"username":"u1","password":"p"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "signed-token", w.Body.String())
		assert.Equal(t, "u1", gotUsername)
		assert.Equal(t, "p", gotPassword)
	})

	t.Run("taken username", func(t *testing.T) {
		accounts := &mockAccountService{
			SignUpFn: func(context.Context, string, string, string) (*domain.User, string, error) {
				return nil, "", store.ErrUsernameExists
			},
		}
		h := NewAuthHandler(accounts, nil)

		w := httptest.NewRecorder()
		h.Signup(w, signupRequest(`{"username":"u1","password":"p"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, shared.ConflictError, w.Body.String())
	})

	t.Run("missing password", func(t *testing.T) {
		h := NewAuthHandler(&mockAccountService{}, nil)

		w := httptest.NewRecorder()
		h.Signup(w, signupRequest(`{"username":"u1"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.BadRequestError, w.Body.String())
	})
}

func TestAuthHandler_Signin(t *testing.T) {
	accounts := &mockAccountService{
		SignInFn: func(_ context.Context, username, password string) (string, error) {
			if username == "u1" && password == "p" {
				return "signed-token", nil
			}
			return "", service.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(accounts, nil)

	tests := []struct {
		name       string
		setAuth    func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid credentials",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("u1", "p") },
			wantStatus: http.StatusOK,
			wantBody:   "signed-token",
		},
		{
			name:       "wrong password",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("u1", "nope") },
			wantStatus: http.StatusUnauthorized,
			wantBody:   shared.UnauthorizedError,
		},
		{
			name:       "no credentials",
			setAuth:    func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   shared.UnauthorizedError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/signin", nil)
			tt.setAuth(req)
			w := httptest.NewRecorder()

			h.Signin(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
