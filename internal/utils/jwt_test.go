package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-session-secret")

func TestSessionToken_RoundTrip(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	token, issued, err := GenerateSessionToken(userID, testSecret, now, SessionTTL)
	require.NoError(t, err)
	assert.NotEqual(t, userID.String(), token)

	claims, err := VerifySessionToken(token, testSecret)
	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestSessionToken_Expired(t *testing.T) {
	token, _, err := GenerateSessionToken(uuid.New(), testSecret, time.Now().Add(-8*24*time.Hour), SessionTTL)
	require.NoError(t, err)

	_, err = VerifySessionToken(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateSessionToken(uuid.New(), testSecret, time.Now(), SessionTTL)
	require.NoError(t, err)

	_, err = VerifySessionToken(token, []byte("other"))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestSessionToken_RawUserIDRejected(t *testing.T) {
	_, err := VerifySessionToken(uuid.NewString(), testSecret)
	assert.Error(t, err)
}

func TestGenerateSessionToken_EmptySecret(t *testing.T) {
	_, _, err := GenerateSessionToken(uuid.New(), nil, time.Now(), SessionTTL)
	assert.Error(t, err)
}
