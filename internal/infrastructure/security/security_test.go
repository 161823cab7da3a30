package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateULID(t *testing.T) {
	a, b := GenerateULID(), GenerateULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsULID(a))
	assert.False(t, IsULID("not-a-ulid"))
}

func TestEditorTokenRoundTrip(t *testing.T) {
	token, expires, err := GenerateEditorToken("editor", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := ValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, claims.Role)
	assert.Equal(t, "editor", claims.Subject)
}

func TestValidateJWTRejects(t *testing.T) {
	token, _, err := GenerateEditorToken("editor", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, _, err := GenerateEditorToken("editor", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateJWT(expired, "secret")
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"type": "visitor", "exp": time.Now().Add(time.Hour).Unix()})
	signed, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ValidateJWT(signed, "secret")
	assert.Error(t, err)
}

func TestGenerateSecureKey(t *testing.T) {
	key, err := GenerateSecureKey(64)
	require.NoError(t, err)
	assert.Len(t, key, 64)
}
