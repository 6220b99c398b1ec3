package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlement-service/pkg/models"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Login: "operator", Role: models.RoleAdmin}

	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)

	_, err = ValidateJWT("")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	require.NoError(t, err)
	assert.NotEqual(t, "correcthorse", hash)

	assert.True(t, CheckPassword(hash, "correcthorse"))
	assert.False(t, CheckPassword(hash, "wrongstaple"))
}
