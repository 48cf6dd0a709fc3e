package password_test

import (
	"rental/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "regular", input: "secret123"},
		{name: "unicode", input: "sécret-密码"},
		{name: "at the limit", input: strings.Repeat("a", password.MaxLength)},
		{name: "empty", input: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", input: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.input, hash)
			assert.NoError(t, password.Verify(tt.input, hash))
			assert.False(t, password.NeedsRehash(hash))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("secret123")
	require.NoError(t, err)

	second, err := password.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
		internal bool
	}{
		{name: "match", password: "secret123", hash: hash},
		{name: "mismatch", password: "secret124", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case sensitive", password: "SECRET123", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "secret123", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "corrupt hash", password: "secret123", hash: "not-a-bcrypt-hash", internal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			switch {
			case tt.internal:
				require.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	cheap, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, password.NeedsRehash(string(cheap)))
	assert.True(t, password.NeedsRehash("garbage"))
}
