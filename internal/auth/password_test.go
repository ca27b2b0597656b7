package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("pass")
	require.NoError(t, err)
	require.NotEqual(t, "pass", hash)

	assert.True(t, hasher.Check("pass", hash))
	assert.False(t, hasher.Check("wrong", hash))
	assert.False(t, hasher.Check("pass", "not-a-hash"))
}
