package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"rental/infras/otel/mocks"
	"rental/internal/handlers/health"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func serve(handler health.Handler) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	return rec
}

func up(context.Context) error { return nil }

func TestHealth(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		handler := health.NewWithChecks(map[string]health.Check{"postgres": up, "redis": up}, mocks.NewOtel())

		rec := serve(handler)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redis":"up"`)
	})

	t.Run("dependency down", func(t *testing.T) {
		handler := health.NewWithChecks(map[string]health.Check{
			"postgres": up,
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		}, mocks.NewOtel())

		rec := serve(handler)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("draining", func(t *testing.T) {
		handler := health.NewWithChecks(map[string]health.Check{"postgres": up}, mocks.NewOtel())
		handler.Drain()

		rec := serve(handler)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "PREPARING TO SHUT DOWN")
	})
}
