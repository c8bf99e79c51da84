package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/job-seeker-api/internal/api/shared"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/service"
)

// AuthHandler handles account sign-up and sign-in.
type AuthHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /api/signup. The body is a SignupRequest; the
// response body is the access token as plain text.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, token, err := h.accounts.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("user registered",
		slog.String("user_id", user.ID.String()))
	shared.RespondWithText(w, r, http.StatusOK, token)
}

// Signin handles GET /api/signin with HTTP Basic credentials. The response
// body is the access token as plain text.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok || username == "" {
		HandleAPIError(w, r, service.ErrInvalidCredentials)
		return
	}

	token, err := h.accounts.SignIn(r.Context(), username, password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithText(w, r, http.StatusOK, token)
}
