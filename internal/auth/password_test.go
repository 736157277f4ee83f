package auth_test

import (
	"strings"
	"testing"

	"github.com/hywel/accountd/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "password123"},
		{name: "empty password", password: ""},
		{name: "unicode password", password: "pässwörd-密码"},
		{name: "long password", password: strings.Repeat("x", 256)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := auth.HashPassword(tt.password)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

			ok, err := auth.VerifyPassword(encoded, tt.password)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = auth.VerifyPassword(encoded, tt.password+"x")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHashPassword_SaltIsUnique(t *testing.T) {
	first, err := auth.HashPassword("samepassword")
	require.NoError(t, err)
	second, err := auth.HashPassword("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must use different salts")
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "garbage", encoded: "not-a-hash"},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "bad base64 salt", encoded: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{name: "missing fields", encoded: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := auth.VerifyPassword(tt.encoded, "whatever")
			assert.ErrorIs(t, err, auth.ErrMalformedHash)
			assert.False(t, ok)
		})
	}
}
