package redis_test

import (
	"rental/config"
	"rental/infras/redis"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "redis"
	cfg.Cache.Redis.Primary.Port = "6379"
	cfg.Cache.Redis.Primary.Password = "secret"
	cfg.Cache.Redis.Primary.DB = 2

	opts := redis.Options(cfg)

	assert.Equal(t, "redis:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)

	cfg.Cache.Redis.DialTimeoutSeconds = 1
	assert.Equal(t, time.Second, redis.Options(cfg).DialTimeout)
}
