package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.Error(t, err)

	m, err := NewManager("a-secret-of-reasonable-length", time.Hour)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestGenerateAndValidate(t *testing.T) {
	m, err := NewManager("a-secret-of-reasonable-length", time.Hour)
	require.NoError(t, err)

	token, tokenID, expiresAt, err := m.Generate("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, tokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, gotTokenID, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, tokenID, gotTokenID)
}

func TestTokenIDsAreUnique(t *testing.T) {
	m, err := NewManager("a-secret-of-reasonable-length", time.Hour)
	require.NoError(t, err)

	_, first, _, err := m.Generate("user-1")
	require.NoError(t, err)
	_, second, _, err := m.Generate("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateRejects(t *testing.T) {
	m, err := NewManager("a-secret-of-reasonable-length", time.Hour)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, _, err := m.Validate("garbage")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewManager("a-different-secret-entirely", time.Hour)
		require.NoError(t, err)

		token, _, _, err := other.Generate("user-1")
		require.NoError(t, err)

		_, _, err = m.Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		short, err := NewManager("a-secret-of-reasonable-length", -time.Minute)
		require.NoError(t, err)

		token, _, _, err := short.Generate("user-1")
		require.NoError(t, err)

		_, _, err = short.Validate(token)
		assert.Error(t, err)
	})
}
