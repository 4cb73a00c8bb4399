package token

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("alice", secret, time.Hour)
	require.NoError(t, err)

	got, err := GetIdentityFromToken(tok, secret)
	require.NoError(t, err)
	assert.EqualValues(t, "alice", got)
}

func TestGetIdentityFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -1*time.Second)
	require.NoError(t, err)

	_, err = GetIdentityFromToken(tok, secret)
	assert.True(t, errors.Is(err, common.ErrTokenExpired), "got %v", err)
}

func TestGetIdentityFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = GetIdentityFromToken(tok, []byte("wrong-secret"))
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestGetIdentityFromToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := GetIdentityFromToken("not.a.jwt", []byte("k"))
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestGetIdentityFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "mallory"}).SignedString(secret)
	require.NoError(t, err)

	_, err = GetIdentityFromToken(tok, secret)
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestGetIdentityFromToken_EmptyIdentity(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("", secret, time.Hour)
	require.NoError(t, err)

	_, err = GetIdentityFromToken(tok, secret)
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestPeekIdentity(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("carol", []byte("whatever"), -time.Minute)
	require.NoError(t, err)

	id, err := PeekIdentity(tok)
	require.NoError(t, err)
	assert.Equal(t, "carol", string(id), "expired or foreign-secret tokens still reveal the identity")

	_, err = PeekIdentity("not.a.token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	empty, err := GenerateToken("", []byte("k"), time.Minute)
	require.NoError(t, err)
	_, err = PeekIdentity(empty)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestClaimsLifetime(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("dave", secret, 90*time.Minute)
	require.NoError(t, err)

	claims, err := GetClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, claims.Lifetime())
	assert.Equal(t, "dave", claims.UserID)

	assert.Zero(t, (&Claims{}).Lifetime())
}
