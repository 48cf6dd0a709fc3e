package middleware

import (
	"net/http"
	"rental/permissions"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/metrics"
	"rental/transport/http/response"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	limiterKeyUser   = "user"
	limiterKeyClient = "client"
	unknownUserAgent = "unknown"
)

// RateLimit spends one token from the caller's bucket. Authenticated callers
// are keyed by user id, anonymous ones by address and user agent. When the
// limiter store is unreachable the request goes through.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.config.App.RateLimiter.Enable {
			next.ServeHTTP(w, r)

			return
		}

		decision, err := a.limiter.Allow(r.Context(), limiterKey(r))
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")

			next.ServeHTTP(w, r)

			return
		}

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(decision.Limit))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			metrics.RecordRateLimited()
			response.WithRequestLimitExceeded(w, decision.RetryAfter)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func limiterKey(r *http.Request) string {
	if actor := permissions.ActorFromContext(r.Context()); actor.ID != "" {
		return shared.BuildCacheKey(limiterKeyUser, actor.ID)
	}

	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = unknownUserAgent
	}

	return shared.BuildCacheKey(limiterKeyClient, clientIP(r), ua)
}
