package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("néroli-de-nuit")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2"), "hash bcrypt attendu, reçu %q", hash)

	require.True(t, CheckPassword("néroli-de-nuit", hash))
	require.False(t, CheckPassword("autre-mot-de-passe", hash))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	require.False(t, CheckPassword("x", "pas-un-hash"))
}
