package utils

import (
	"testing"

	"cashper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := &models.UserClaims{
		UserID:       "507f1f77bcf86cd799439011",
		Email:        "asha@example.com",
		Role:         models.RoleAdmin,
		IsAdmin:      true,
		TokenVersion: 3,
	}

	access, refresh, err := GenerateTokens(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	for _, token := range []string{access, refresh} {
		_, parsed, err := ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, claims.UserID, parsed.UserID)
		assert.Equal(t, claims.Email, parsed.Email)
		assert.True(t, parsed.IsAdmin)
		assert.Equal(t, 3, parsed.TokenVersion)
		assert.Equal(t, claims.UserID, parsed.Subject)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: "abc"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, _, err = ParseToken(access)
	assert.Error(t, err)
}

func TestGenerateTokens_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, _, err := GenerateTokens(&models.UserClaims{UserID: "abc"})
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, _, err := ParseToken("not.a.jwt")
	assert.Error(t, err)
}
