package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateToken("alice", "user-1", []string{"UrlViewer", "QrViewer"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, []string{"UrlViewer", "QrViewer"}, claims.Roles)

	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(TokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken("alice", "user-1", nil)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("secret")

	for _, bad := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := svc.ValidateToken(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("secret")
	svc.ttl = -time.Hour

	token, err := svc.GenerateToken("alice", "user-1", nil)
	require.NoError(t, err)

	_, err = NewJWTService("secret").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
