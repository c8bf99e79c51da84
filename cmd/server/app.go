package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/config"
	"github.com/phrazzld/job-seeker-api/internal/platform/postgres"
	"github.com/phrazzld/job-seeker-api/internal/service"
	"github.com/phrazzld/job-seeker-api/internal/service/auth"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// storeSet is the persistence layer the application runs on.
type storeSet struct {
	transactor store.Transactor
	users      store.UserStore
	profiles   store.ProfileStore
	companies  store.CompanyStore
	contacts   store.ContactStore
	jobs       store.JobStore
	events     store.EventStore
	refs       store.BackRefStore
}

// postgresStores builds the PostgreSQL-backed stores over db.
func postgresStores(db *sqlx.DB, logger *slog.Logger) storeSet {
	return storeSet{
		transactor: store.NewSQLTransactor(db),
		users:      postgres.NewPostgresUserStore(db, logger),
		profiles:   postgres.NewPostgresProfileStore(db, logger),
		companies:  postgres.NewPostgresCompanyStore(db, logger),
		contacts:   postgres.NewPostgresContactStore(db, logger),
		jobs:       postgres.NewPostgresJobStore(db, logger),
		events:     postgres.NewPostgresEventStore(db, logger),
		refs:       postgres.NewPostgresBackRefStore(db, logger),
	}
}

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	jwtService auth.JWTService

	accountService service.AccountService
	profileService service.ProfileService
	companyService service.CompanyService
	contactService service.ContactService
	jobService     service.JobService
	eventService   service.EventService
	reconciler     *service.Reconciler
}

// newApplication wires the services over stores.
func newApplication(cfg *config.Config, logger *slog.Logger, stores storeSet) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	cascade := service.NewCascadeManager(stores.transactor, stores.refs, logger)
	profiles := service.NewProfileService(stores.transactor, stores.profiles, logger)

	app := &application{
		config:         cfg,
		logger:         logger,
		jwtService:     jwtService,
		profileService: profiles,
		accountService: service.NewAccountService(
			stores.users,
			profiles,
			auth.NewBcryptHasher(cfg.Auth.BcryptCost),
			jwtService,
			logger,
		),
		companyService: service.NewCompanyService(
			stores.transactor, cascade, stores.profiles, stores.companies, logger),
		contactService: service.NewContactService(
			stores.transactor, cascade, stores.profiles, stores.companies, stores.contacts, logger),
		jobService: service.NewJobService(
			stores.transactor, cascade, stores.profiles, stores.companies, stores.jobs, logger),
		eventService: service.NewEventService(
			stores.transactor, cascade, stores.profiles, stores.companies, stores.events, logger),
		reconciler: service.NewReconciler(stores.transactor, stores.refs, logger),
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is canceled or the server fails.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
