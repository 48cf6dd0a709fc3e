package redis

import (
	"context"
	"net"
	"rental/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultDialTimeout = 5 * time.Second

// Options maps the primary redis settings onto client options.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	dialTimeout := time.Duration(cfg.Cache.Redis.DialTimeoutSeconds) * time.Second
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	return &goRedis.Options{
		Addr:        net.JoinHostPort(primary.Host, primary.Port),
		Password:    primary.Password,
		DB:          primary.DB,
		DialTimeout: dialTimeout,
	}
}

// New connects to the primary and stops the process when it cannot be pinged.
// The rate limiter and the caches both depend on it.
func New(cfg *config.Config) *goRedis.Client {
	opts := Options(cfg)
	client := goRedis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", opts.Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", opts.DB).
		Str("addr", opts.Addr).
		Msg("Connected to Redis")

	return client
}
