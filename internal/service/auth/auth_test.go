package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccountNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		acc := GenerateAccountNumber()

		require.True(t, strings.HasPrefix(acc, "ACC"))
		require.Len(t, acc, 7)

		digits := acc[3:]
		assert.GreaterOrEqual(t, digits, "1000")
		assert.LessOrEqual(t, digits, "9999")
	}
}

func TestGenerateToken(t *testing.T) {
	tok := GenerateToken()

	require.Len(t, tok, 64)
	_, err := hex.DecodeString(tok)
	require.NoError(t, err)

	assert.NotEqual(t, tok, GenerateToken())
}
