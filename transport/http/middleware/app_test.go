package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"rental/config"
	"rental/infras/otel/mocks"
	"rental/permissions"
	cacheMocks "rental/shared/cache/mocks"
	"rental/shared/constant"
	"rental/shared/limiter"
	limiterMocks "rental/shared/limiter/mocks"
	"rental/transport/http/middleware"
	"strings"
	"testing"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func created(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"data":{"status":"confirmed"}}`))
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true

	t.Run("authenticated callers use their own bucket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lim := limiterMocks.NewMockLimiter(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl), lim)

		lim.EXPECT().Allow(gomock.Any(), "user:cust-1").Return(limiter.Decision{Allowed: true, Limit: 60, Remaining: 59}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
		req = req.WithContext(permissions.ContextWithActor(req.Context(), permissions.Actor{ID: "cust-1", Role: constant.RoleCustomer}))

		rec := httptest.NewRecorder()
		m.RateLimit(http.HandlerFunc(created)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "59", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("anonymous callers are keyed by address and agent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lim := limiterMocks.NewMockLimiter(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl), lim)

		lim.EXPECT().Allow(gomock.Any(), "client:203.0.113.7:curl/8").Return(limiter.Decision{Allowed: true, Limit: 60}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/cars", nil)
		req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")
		req.Header.Set(constant.RequestHeaderUserAgent, "curl/8")

		rec := httptest.NewRecorder()
		m.RateLimit(http.HandlerFunc(created)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("empty bucket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lim := limiterMocks.NewMockLimiter(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl), lim)

		lim.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(limiter.Decision{Allowed: false, Limit: 60, RetryAfter: 3 * time.Second}, nil)

		rec := httptest.NewRecorder()
		m.RateLimit(http.HandlerFunc(created)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cars", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "3", rec.Header().Get(constant.RequestHeaderRetryAfter))
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("limiter store down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lim := limiterMocks.NewMockLimiter(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl), lim)

		lim.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(limiter.Decision{}, errors.New("redis: connection refused"))

		rec := httptest.NewRecorder()
		m.RateLimit(http.HandlerFunc(created)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cars", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl), limiterMocks.NewMockLimiter(ctrl))

		rec := httptest.NewRecorder()
		m.RateLimit(http.HandlerFunc(created)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cars", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestIdempotency(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Idempotency.Enable = true
	cfg.App.Idempotency.TTLSeconds = 60

	newRequest := func(method, key string) *http.Request {
		req := httptest.NewRequest(method, "/v1/bookings", strings.NewReader(`{}`))
		req.Header.Set(constant.RequestHeaderIdempotencyKey, key)

		return req.WithContext(permissions.ContextWithActor(req.Context(), permissions.Actor{ID: "cust-1", Role: constant.RoleCustomer}))
	}

	t.Run("records the first response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache, limiterMocks.NewMockLimiter(ctrl))

		cache.EXPECT().Get(gomock.Any(), "idempotency:cust-1:POST:/v1/bookings:abc", gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", goRedis.Nil))
		cache.EXPECT().SaveIfAbsent(gomock.Any(), "idempotency:cust-1:POST:/v1/bookings:abc:lock", "cust-1", 30).Return(true, nil)
		cache.EXPECT().Delete(gomock.Any(), "idempotency:cust-1:POST:/v1/bookings:abc:lock").Return(nil)
		cache.EXPECT().Save(gomock.Any(), "idempotency:cust-1:POST:/v1/bookings:abc", gomock.Any(), 60).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				assert.Contains(t, string(mustJSON(t, value)), `"status":201`)

				return nil
			})

		rec := httptest.NewRecorder()
		m.Idempotency(http.HandlerFunc(created)).ServeHTTP(rec, newRequest(http.MethodPost, "abc"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderIdempotentReplay))
	})

	t.Run("replays a stored response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache, limiterMocks.NewMockLimiter(ctrl))

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				return unmarshal(value, `{"status":201,"content_type":"application/json","body":"eyJvayI6dHJ1ZX0="}`)
			})

		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run on replay")
		})

		rec := httptest.NewRecorder()
		m.Idempotency(next).ServeHTTP(rec, newRequest(http.MethodPost, "abc"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "true", rec.Header().Get(constant.RequestHeaderIdempotentReplay))
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("server errors are not recorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache, limiterMocks.NewMockLimiter(ctrl))

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
		cache.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

		failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		rec := httptest.NewRecorder()
		m.Idempotency(failing).ServeHTTP(rec, newRequest(http.MethodPost, "abc"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache, limiterMocks.NewMockLimiter(ctrl))

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(goRedis.Nil)
		cache.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run while the key is locked")
		})

		rec := httptest.NewRecorder()
		m.Idempotency(next).ServeHTTP(rec, newRequest(http.MethodPost, "abc"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("reads pass through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl), limiterMocks.NewMockLimiter(ctrl))

		rec := httptest.NewRecorder()
		m.Idempotency(http.HandlerFunc(created)).ServeHTTP(rec, newRequest(http.MethodGet, "abc"))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl), limiterMocks.NewMockLimiter(ctrl))

	rec := httptest.NewRecorder()
	m.Tracing(m.Metrics(http.HandlerFunc(created))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cars", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"status":"confirmed"}}`, rec.Body.String())
}

func mustJSON(t *testing.T, value any) []byte {
	t.Helper()

	raw, err := json.Marshal(value)
	require.NoError(t, err)

	return raw
}

func unmarshal(target any, raw string) error {
	return json.Unmarshal([]byte(raw), target)
}
