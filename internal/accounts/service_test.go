package accounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/snapgram/backend/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	account := &models.Account{ID: "acct-1", Email: "ada@example.com", Name: "Ada"}
	session := &models.Session{ID: "sess-1", AccountID: account.ID, ExpiresAt: time.Now().Add(time.Hour)}

	token, err := signSessionToken(secret, account, session)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSessionToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "sess-1", claims.RegisteredClaims.ID)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	account := &models.Account{ID: "acct-1", Email: "ada@example.com"}
	session := &models.Session{ID: "sess-1", AccountID: account.ID, ExpiresAt: time.Now().Add(time.Hour)}

	token, err := signSessionToken([]byte("secret-a"), account, session)
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestParseSessionTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	account := &models.Account{ID: "acct-1"}
	session := &models.Session{ID: "sess-1", AccountID: account.ID, ExpiresAt: time.Now().Add(-time.Minute)}

	token, err := signSessionToken(secret, account, session)
	require.NoError(t, err)

	_, err = ParseSessionToken(secret, token)
	assert.Error(t, err)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken([]byte("test-secret"), "not.a.token")
	assert.Error(t, err)
}
