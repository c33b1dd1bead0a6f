package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/tournament_platform/internal/config"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
	require.NoError(t, err)
	return issuer
}

func TestNewIssuer(t *testing.T) {
	_, err := NewIssuer(config.AuthConfig{TokenTTL: time.Hour})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssuer_IssueAndParse(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.Issue("u1", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, issuerName, claims.Issuer)
}

func TestIssuer_Parse(t *testing.T) {
	issuer := newTestIssuer(t)

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		other, err := NewIssuer(config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour})
		require.NoError(t, err)
		token, err := other.Issue("u1", "a@b.c")
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		issuer.now = func() time.Time { return past }
		token, err := issuer.Issue("u1", "a@b.c")
		require.NoError(t, err)
		issuer.now = time.Now

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuerName,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		raw, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
