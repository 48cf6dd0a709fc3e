package middleware

import (
	"bytes"
	"context"
	"net/http"
	"rental/permissions"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/transport/http/response"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyIdempotency    = "idempotency"
	idempotencyLockSuffix  = "lock"
	idempotencyLockSeconds = 30
)

var errIdempotencyInProgress = failure.Conflict("a request with this idempotency key is still in progress")

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Idempotency replays the first response recorded for an Idempotency-Key on
// POST and PATCH requests. Server errors are not recorded so the client can retry.
// A second request arriving while the first is still running gets 409.
func (a *appMiddleware) Idempotency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(constant.RequestHeaderIdempotencyKey)

		if !a.config.App.Idempotency.Enable || key == "" || (r.Method != http.MethodPost && r.Method != http.MethodPatch) {
			next.ServeHTTP(w, r)

			return
		}

		actor := permissions.ActorFromContext(r.Context())
		cacheKey := shared.BuildCacheKey(cacheKeyIdempotency, actor.ID, r.Method, r.URL.Path, key)

		var stored storedResponse

		err := a.cache.Get(r.Context(), cacheKey, &stored)
		if err != nil && !cache.IsMiss(err) {
			log.Warn().Err(err).Str("key", cacheKey).Msg("failed to read idempotent response")
		}

		if err == nil {
			w.Header().Set(constant.RequestHeaderContentType, stored.ContentType)
			w.Header().Set(constant.RequestHeaderIdempotentReplay, "true")
			w.WriteHeader(stored.Status)

			if _, err := w.Write(stored.Body); err != nil {
				log.Error().Err(err).Msg("failed to replay idempotent response")
			}

			return
		}

		lockKey := shared.BuildCacheKey(cacheKey, idempotencyLockSuffix)

		locked, err := a.cache.SaveIfAbsent(r.Context(), lockKey, actor.ID, idempotencyLockSeconds)
		if err != nil {
			log.Warn().Err(err).Str("key", lockKey).Msg("failed to lock idempotency key, continuing without it")
		}

		if err == nil && !locked {
			response.WithError(w, errIdempotencyInProgress)

			return
		}

		if locked {
			defer func() {
				if err := a.cache.Delete(context.WithoutCancel(r.Context()), lockKey); err != nil {
					log.Warn().Err(err).Str("key", lockKey).Msg("failed to release idempotency lock")
				}
			}()
		}

		body := &bytes.Buffer{}
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(body)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		if status >= http.StatusInternalServerError {
			return
		}

		stored = storedResponse{
			Status:      status,
			ContentType: ww.Header().Get(constant.RequestHeaderContentType),
			Body:        body.Bytes(),
		}

		if err := a.cache.Save(context.WithoutCancel(r.Context()), cacheKey, stored, a.config.App.Idempotency.TTLSeconds); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("failed to store idempotent response")
		}
	})
}
