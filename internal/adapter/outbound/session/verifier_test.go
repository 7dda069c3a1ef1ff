package session

import (
	"testing"
	"time"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier(&Config{})
	assert.Error(t, err)

	_, err = NewVerifier(nil)
	assert.Error(t, err)
}

func TestVerifier_Verify(t *testing.T) {
	v, err := NewVerifier(&Config{Secret: testSecret})
	require.NoError(t, err)
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("premium user", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user_1", "plan": "premium", "exp": exp})

		claims, err := v.Verify(tok)

		require.NoError(t, err)
		assert.Equal(t, "user_1", claims.UserID)
		assert.Equal(t, model.PlanPremium, claims.Plan)
		assert.False(t, claims.IsAdmin)
		assert.Equal(t, exp, claims.ExpiresAt.Unix())
	})

	t.Run("missing plan is free", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user_2", "exp": exp})

		claims, err := v.Verify(tok)

		require.NoError(t, err)
		assert.Equal(t, model.PlanFree, claims.Plan)
	})

	t.Run("numeric subject is normalized", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": 12345678901, "exp": exp})

		claims, err := v.Verify(tok)

		require.NoError(t, err)
		assert.Equal(t, "12345678901", claims.UserID)
	})

	t.Run("admin role", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "root", "role": "admin", "exp": exp})

		claims, err := v.Verify(tok)

		require.NoError(t, err)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("expired", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()})

		_, err := v.Verify(tok)

		assert.ErrorIs(t, err, outbound.ErrInvalidSession)
	})

	t.Run("no expiry", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"})

		_, err := v.Verify(tok)

		assert.ErrorIs(t, err, outbound.ErrInvalidSession)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := sign(t, "another-secret-that-is-long-enough!!", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "exp": exp})

		_, err := v.Verify(tok)

		assert.ErrorIs(t, err, outbound.ErrInvalidSession)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u", "exp": exp})

		_, err := v.Verify(tok)

		assert.ErrorIs(t, err, outbound.ErrInvalidSession)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp})

		_, err := v.Verify(tok)

		assert.ErrorIs(t, err, outbound.ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")

		assert.ErrorIs(t, err, outbound.ErrInvalidSession)
	})
}

func TestVerifier_NestedPlanClaimAndIssuer(t *testing.T) {
	cfg := &Config{Secret: testSecret, Issuer: "https://id.example.com", PlanClaim: "public_metadata.plan"}
	v, err := NewVerifier(cfg)
	require.NoError(t, err)
	issuer, err := NewIssuer(cfg)
	require.NoError(t, err)

	tok, err := issuer.Issue("user_9", model.PlanPremium, true, time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, model.PlanPremium, claims.Plan)
	assert.True(t, claims.IsAdmin)

	t.Run("wrong issuer", func(t *testing.T) {
		tok := sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "u",
			"iss": "https://evil.example.com",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := v.Verify(tok)

		assert.ErrorIs(t, err, outbound.ErrInvalidSession)
	})
}
