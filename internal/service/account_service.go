package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/service/auth"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	auth.PasswordHasher
	auth.PasswordVerifier
}

// AccountService registers users and issues access tokens.
type AccountService interface {
	// SignUp creates a user and returns an access token for them.
	// Duplicate usernames or emails yield store.ErrUsernameExists or
	// store.ErrEmailExists.
	SignUp(ctx context.Context, username, email, password string) (*domain.User, string, error)

	// SignIn checks credentials and returns an access token. A user's first
	// sign-in creates their default profile.
	SignIn(ctx context.Context, username, password string) (string, error)
}

type accountServiceImpl struct {
	users    store.UserStore
	profiles ProfileService
	hasher   PasswordHasher
	tokens   auth.JWTService
	logger   *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	users store.UserStore,
	profiles ProfileService,
	hasher PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountServiceImpl{
		users:    users,
		profiles: profiles,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "account_service")),
	}
}

func (s *accountServiceImpl) SignUp(
	ctx context.Context,
	username, email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, password)
	if err != nil {
		return nil, "", err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, "", wrapErr("account", "sign_up", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("sign-up rejected: account exists", slog.String("username", username))
			return nil, "", err
		}
		return nil, "", wrapErr("account", "sign_up", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", wrapErr("account", "sign_up", err)
	}

	log.Info("user signed up", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

func (s *accountServiceImpl) SignIn(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("sign-in rejected: unknown user")
			return "", ErrInvalidCredentials
		}
		return "", wrapErr("account", "sign_in", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("sign-in rejected: password mismatch", slog.String("user_id", user.ID.String()))
		return "", ErrInvalidCredentials
	}

	if _, err := s.profiles.EnsureDefault(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", wrapErr("account", "sign_in", err)
	}
	return token, nil
}
