package limiter

//go:generate go run go.uber.org/mock/mockgen -source=./limiter.go -destination=./mocks/limiter_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/otel"
	"rental/shared/constant"
	"rental/shared/timezone"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix = "limiter"

	resultFields = 3
)

// tokenBucketScript refills the bucket for the elapsed time, takes one token
// when available and refreshes the TTL. State lives in a hash so every
// instance sharing the redis sees the same bucket.
//
// KEYS[1] bucket key
// ARGV    capacity, refill per second, now in unix millis, ttl seconds
// returns {allowed, remaining, retry after millis}
var tokenBucketScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local refill = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])

if tokens == nil or ts == nil then
	tokens = capacity
	ts = now
end

local elapsed = math.max(0, now - ts) / 1000
tokens = math.min(capacity, tokens + elapsed * refill)

local allowed = 0
local retry = 0

if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
elseif refill > 0 then
	retry = math.ceil((1 - tokens) / refill * 1000)
end

redis.call("HSET", KEYS[1], "tokens", tostring(tokens), "ts", now)
redis.call("EXPIRE", KEYS[1], ttl)

return {allowed, math.floor(tokens), retry}
`)

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type tokenBucket struct {
	scripter redis.Scripter
	otel     otel.Otel
	capacity int
	refill   float64
	ttl      int
	now      func() time.Time
}

func NewTokenBucket(client *redis.Client, cfg *config.Config, otl otel.Otel) Limiter {
	return newTokenBucket(client, otl, cfg.App.RateLimiter.Capacity, cfg.App.RateLimiter.RefillPerSecond, cfg.App.RateLimiter.TTLSeconds, timezone.Now)
}

func newTokenBucket(scripter redis.Scripter, otl otel.Otel, capacity int, refill float64, ttl int, now func() time.Time) *tokenBucket {
	return &tokenBucket{
		scripter: scripter,
		otel:     otl,
		capacity: capacity,
		refill:   refill,
		ttl:      ttl,
		now:      now,
	}
}

// Allow implements Limiter.
func (l *tokenBucket) Allow(ctx context.Context, key string) (decision Decision, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLimiterScopeName, constant.OtelLimiterScopeName+".Allow")
	defer scope.End()
	defer scope.TraceIfError(err)

	decision.Limit = l.capacity

	bucketKey := fmt.Sprintf("%s:%s", keyPrefix, key)
	scope.SetAttribute("limiter.key", bucketKey)

	values, err := tokenBucketScript.Run(ctx, l.scripter, []string{bucketKey}, l.capacity, l.refill, l.now().UnixMilli(), l.ttl).Int64Slice()
	if err != nil {
		log.Error().Err(err).Str("key", bucketKey).Msg("failed to run token bucket script")

		return decision, fmt.Errorf("failed to run token bucket script: %w", err)
	}

	if len(values) != resultFields {
		return decision, fmt.Errorf("unexpected token bucket result: %v", values)
	}

	decision.Allowed = values[0] == 1
	decision.Remaining = int(values[1])
	decision.RetryAfter = time.Duration(values[2]) * time.Millisecond

	return decision, nil
}
