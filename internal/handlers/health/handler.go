package health

import (
	"context"
	"net/http"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/shared/constant"
	"rental/transport/http/response"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Status struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

type Handler struct {
	checks   map[string]Check
	draining *atomic.Bool
	otel     otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return NewWithChecks(map[string]Check{
		"postgres": db.Ping,
		"redis": func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		},
	}, otel)
}

func NewWithChecks(checks map[string]Check, otel otel.Otel) Handler {
	return Handler{
		checks:   checks,
		draining: &atomic.Bool{},
		otel:     otel,
	}
}

// Drain makes the probe fail so load balancers stop routing here before shutdown.
func (handler *Handler) Drain() {
	handler.draining.Store(true)
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/health", handler.Health)
}

// Health reports the state of the server and its dependencies.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	if handler.draining.Load() {
		response.WithPreparingShutdown(w)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{Status: "ok", Dependencies: make(map[string]string, len(handler.checks))}

	for name, check := range handler.checks {
		if err := check(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("dependency", name).Msg("health check failed")

			status.Dependencies[name] = "down"

			continue
		}

		status.Dependencies[name] = "up"
	}

	for _, state := range status.Dependencies {
		if state != "up" {
			response.WithUnhealthy(w)

			return
		}
	}

	response.WithJSON(w, http.StatusOK, status)
}
