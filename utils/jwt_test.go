package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@example.com", "paciente", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, userType, err := ExtractUserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, "paciente", userType)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@example.com", "paciente", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractUserFromToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "ana@example.com", "paciente", time.Hour)
	require.NoError(t, err)

	_, _, err = ExtractUserFromToken(token + "x")
	assert.Error(t, err)
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("abc")
	b := HashToken("abc")
	c := HashToken("abd")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
