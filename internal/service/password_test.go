package service_test

import (
	"strings"
	"testing"

	"github.com/stemsi/admin-panel-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasherHash(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("securePassword123!")
	require.NoError(t, err)
	second, err := h.Hash("securePassword123!")
	require.NoError(t, err)

	assert.NotEqual(t, "securePassword123!", first)
	assert.NotEqual(t, first, second, "salt must differ per call")
	assert.True(t, h.Verify("securePassword123!", first))
	assert.True(t, h.Verify("securePassword123!", second))
}

func TestPasswordHasherHashTooLong(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, service.ErrPasswordTooLong)

	// 30 runes, 90 bytes
	_, err = h.Hash(strings.Repeat("密", 30))
	assert.ErrorIs(t, err, service.ErrPasswordTooLong)
}

func TestPasswordHasherVerify(t *testing.T) {
	h := service.NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("testPassword123!")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{name: "Matching password", password: "testPassword123!", hash: hash, want: true},
		{name: "Wrong password", password: "wrongPassword", hash: hash, want: false},
		{name: "Empty password", password: "", hash: hash, want: false},
		{name: "Invalid hash", password: "testPassword123!", hash: "invalidhash", want: false},
		{name: "Empty hash", password: "testPassword123!", hash: "", want: false},
		{name: "Truncated hash", password: "testPassword123!", hash: hash[:20], want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.password, tt.hash))
		})
	}
}
