package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/job-seeker-api/internal/api"
	apiMiddleware "github.com/phrazzld/job-seeker-api/internal/api/middleware"
	"github.com/phrazzld/job-seeker-api/internal/api/shared"
)

// setupRouter creates the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound)
	})

	authHandler := api.NewAuthHandler(app.accountService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	profileHandler := api.NewProfileHandler(app.profileService)
	companyHandler := api.NewCompanyHandler(app.companyService)
	contactHandler := api.NewContactHandler(app.contactService)
	jobHandler := api.NewJobHandler(app.jobService)
	eventHandler := api.NewEventHandler(app.eventService)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/signup", authHandler.Signup)
		r.Get("/signin", authHandler.Signin)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/profile", func(r chi.Router) {
				r.Post("/", profileHandler.Create)
				r.Get("/", profileHandler.List)

				r.Route("/{profileId}", func(r chi.Router) {
					r.Get("/", profileHandler.Get)
					r.Put("/", profileHandler.Update)
					r.Delete("/", profileHandler.Delete)

					r.Get("/allProfileContacts", contactHandler.ListByProfile)
					r.Get("/allProfileJobs", jobHandler.ListByProfile)
					r.Get("/allProfileEvents", eventHandler.ListByProfile)

					r.Route("/company", func(r chi.Router) {
						r.Post("/", companyHandler.Create)
						r.Get("/", companyHandler.List)

						r.Route("/{companyId}", func(r chi.Router) {
							r.Get("/", companyHandler.Get)
							r.Put("/", companyHandler.Update)
							r.Delete("/", companyHandler.Delete)

							r.Get("/allCompanyContacts", contactHandler.ListByCompany)
							r.Get("/allCompanyJobs", jobHandler.ListByCompany)
							r.Get("/allCompanyEvents", eventHandler.ListByCompany)

							r.Post("/contact", contactHandler.Create)
							r.Get("/contact/{contactId}", contactHandler.Get)
							r.Put("/contact/{contactId}", contactHandler.Update)
							r.Delete("/contact/{contactId}", contactHandler.Delete)

							r.Post("/job", jobHandler.Create)
							r.Get("/job/{jobId}", jobHandler.Get)
							r.Put("/job/{jobId}", jobHandler.Update)
							r.Delete("/job/{jobId}", jobHandler.Delete)

							r.Post("/event", eventHandler.Create)
							r.Get("/event/{eventId}", eventHandler.Get)
							r.Put("/event/{eventId}", eventHandler.Update)
							r.Delete("/event/{eventId}", eventHandler.Delete)
						})
					})
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithText(w, r, http.StatusOK, "OK")
	})

	return r
}
