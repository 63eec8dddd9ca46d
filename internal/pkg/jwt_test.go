package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParsePair(t *testing.T) {
	pair, err := GeneratePair(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.True(t, claims.Provider)
	assert.Equal(t, "access", claims.Subject)
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	_, err := ParseAccess("not-a-token")
	assert.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	pair, err := GeneratePair(7, false)
	require.NoError(t, err)

	next, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ParseAccess(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.False(t, claims.Provider)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	pair, err := GeneratePair(7, false)
	require.NoError(t, err)

	// access 和 refresh 用不同密钥签名，不能互换
	_, err = Refresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestRandDigits(t *testing.T) {
	code, err := RandDigits(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.GreaterOrEqual(t, r, '0')
		assert.LessOrEqual(t, r, '9')
	}
}
