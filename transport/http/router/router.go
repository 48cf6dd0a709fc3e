package router

import (
	"net/http"
	"rental/config"
	"rental/internal/handlers/auth"
	"rental/internal/handlers/bike"
	"rental/internal/handlers/booking"
	"rental/internal/handlers/car"
	"rental/internal/handlers/health"
	"rental/internal/handlers/inspection"
	"rental/internal/handlers/user"
	"rental/shared/metrics"
	"rental/transport/http/middleware"

	// registers the generated swagger spec
	_ "rental/docs"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health     health.Handler
	Auth       auth.Handler
	User       user.Handler
	Car        car.Handler
	Bike       bike.Handler
	Booking    booking.Handler
	Inspection inspection.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	authRole       middleware.AuthRole
	cfg            *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.Recoverer, r.app.Tracing, r.app.Metrics)

	if r.cfg.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.cfg.App.CORS.AllowedOrigins,
			AllowedMethods:   r.cfg.App.CORS.AllowedMethods,
			AllowedHeaders:   r.cfg.App.CORS.AllowedHeaders,
			AllowCredentials: r.cfg.App.CORS.AllowCredentials,
			MaxAge:           r.cfg.App.CORS.MaxAgeSeconds,
		}))
	}

	r.DomainHandlers.Health.Router(router)
	router.Handle("/metrics", metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.authRole.APIKey, r.authRole.Auth, r.authRole.RBAC, r.app.RateLimit, r.app.Idempotency)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Car.Router(routerGroup)
		r.DomainHandlers.Bike.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Inspection.Router(routerGroup)
	})
}

// Handler builds the complete chi router.
func (r *Router) Handler() http.Handler {
	router := chi.NewRouter()
	r.SetupRoutes(router)

	return router
}

// Drain flips the health probe to unavailable.
func (r *Router) Drain() {
	r.DomainHandlers.Health.Drain()
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		authRole:       authRole,
		cfg:            cfg,
	}
}
