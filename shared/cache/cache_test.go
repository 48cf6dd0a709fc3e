package cache_test

import (
	"errors"
	"fmt"
	"rental/shared/cache"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMiss(t *testing.T) {
	assert.True(t, cache.IsMiss(cache.Nil))
	assert.True(t, cache.IsMiss(fmt.Errorf("failed to get cache value: %w", cache.Nil)))
	assert.False(t, cache.IsMiss(errors.New("dial tcp: connection refused")))
	assert.False(t, cache.IsMiss(nil))
}
