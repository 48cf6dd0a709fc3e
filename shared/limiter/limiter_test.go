package limiter

import (
	"context"
	"errors"
	"rental/infras/otel/mocks"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScripter struct {
	redis.Scripter

	result any
	err    error

	keys []string
	args []any
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	f.keys = keys
	f.args = args

	return redis.NewCmdResult(f.result, f.err)
}

func (f *fakeScripter) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, script, keys, args...)
}

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
}

func TestTokenBucket_Allow(t *testing.T) {
	tests := []struct {
		name     string
		result   any
		err      error
		expected Decision
		wantErr  bool
	}{
		{
			name:     "token taken",
			result:   []any{int64(1), int64(4), int64(0)},
			expected: Decision{Allowed: true, Limit: 5, Remaining: 4},
		},
		{
			name:     "bucket empty",
			result:   []any{int64(0), int64(0), int64(1500)},
			expected: Decision{Allowed: false, Limit: 5, Remaining: 0, RetryAfter: 1500 * time.Millisecond},
		},
		{
			name:    "redis unavailable",
			err:     errors.New("dial tcp: connection refused"),
			wantErr: true,
		},
		{
			name:    "malformed result",
			result:  []any{int64(1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scripter := &fakeScripter{result: tt.result, err: tt.err}
			bucket := newTokenBucket(scripter, mocks.NewOtel(), 5, 0.5, 60, fixedClock)

			decision, err := bucket.Allow(context.Background(), "user-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, decision)
			assert.Equal(t, []string{"limiter:user-1"}, scripter.keys)
			assert.Equal(t, []any{5, 0.5, fixedClock().UnixMilli(), 60}, scripter.args)
		})
	}
}
