package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndParseJWT(t *testing.T) {
	m := NewTokenManager("secret", 7*24*time.Hour)

	token, err := m.GenerateJWT("a@example.com")
	require.NoError(t, err)

	claims, err := m.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestParseJWTExpiryWindow(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 12 * 24 * time.Hour
	m := NewTokenManager("secret", window).WithClock(fixedClock(issued))

	token, err := m.GenerateJWT("a@example.com")
	require.NoError(t, err)

	for _, at := range []time.Time{issued, issued.Add(time.Hour), issued.Add(window - time.Second)} {
		_, err := m.WithClock(fixedClock(at)).ParseJWT(token)
		assert.NoError(t, err, "at %s", at)
	}
	for _, at := range []time.Time{issued.Add(window), issued.Add(window + time.Hour)} {
		_, err := m.WithClock(fixedClock(at)).ParseJWT(token)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "at %s: %v", at, err)
	}
}

func TestParseJWTExpiryWindowFractionalIssue(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 900*int(time.Millisecond), time.UTC)
	window := time.Hour
	m := NewTokenManager("secret", window).WithClock(fixedClock(issued))

	token, err := m.GenerateJWT("a@example.com")
	require.NoError(t, err)

	claims, err := m.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, window, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.False(t, claims.IssuedAt.After(issued))

	start := claims.IssuedAt.Time
	_, err = m.WithClock(fixedClock(start.Add(window - time.Millisecond))).ParseJWT(token)
	assert.NoError(t, err)
	_, err = m.WithClock(fixedClock(start.Add(window))).ParseJWT(token)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "%v", err)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).GenerateJWT("a@example.com")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ParseJWT(token)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestParseJWTRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	m := NewTokenManager("secret", time.Hour)
	for _, token := range []string{none, hs512} {
		_, err := m.ParseJWT(token)
		assert.Error(t, err)
	}
}

func TestParseJWTRequiresEmail(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.GenerateJWT("")
	require.NoError(t, err)

	_, err = m.ParseJWT(token)
	assert.True(t, errors.Is(err, ErrMissingEmail))
}

func TestParseJWTMalformed(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).ParseJWT("not.a.token")
	assert.Error(t, err)
}
