package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)
	return raw
}

func TestDecode_WithExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	raw := signToken(t, jwt.MapClaims{
		"sub": "64fa0c",
		"exp": exp.Unix(),
	})

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "64fa0c", claims.Subject)
	assert.Equal(t, "64fa0c", claims.UserID)
	assert.True(t, claims.HasExpiry())
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestDecode_UserIDClaim(t *testing.T) {
	t.Parallel()

	nested := signToken(t, jwt.MapClaims{
		"user": map[string]any{"_id": "u-nested"},
		"_id":  "u-flat",
		"sub":  "u-sub",
	})
	claims, err := Decode(nested)
	require.NoError(t, err)
	assert.Equal(t, "u-nested", claims.UserID)

	flat := signToken(t, jwt.MapClaims{"_id": "u-flat", "sub": "u-sub"})
	claims, err = Decode(flat)
	require.NoError(t, err)
	assert.Equal(t, "u-flat", claims.UserID)
}

func TestDecode_WithoutExpiry(t *testing.T) {
	t.Parallel()

	raw := signToken(t, jwt.MapClaims{"sub": "64fa0c"})

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.False(t, claims.HasExpiry())
	assert.Equal(t, time.Duration(0), claims.ExpiresIn(time.Now()))
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not-a-token", "a.b", "a.!!!.c"} {
		_, err := Decode(raw)
		assert.ErrorIs(t, err, ErrDecode, raw)
	}
}

func TestDecode_IgnoresSignature(t *testing.T) {
	t.Parallel()

	raw := signToken(t, jwt.MapClaims{"sub": "64fa0c", "exp": time.Now().Add(time.Hour).Unix()})

	// Corrupt the signature segment. Structural decoding still works;
	// the backend is the authority on token validity.
	tampered := raw[:len(raw)-4] + "AAAA"
	claims, err := Decode(tampered)
	require.NoError(t, err)
	assert.Equal(t, "64fa0c", claims.Subject)
}

func TestClaims_ExpiresIn(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	claims := Claims{ExpiresAt: now.Add(45 * time.Minute)}
	assert.Equal(t, 45*time.Minute, claims.ExpiresIn(now))

	expired := Claims{ExpiresAt: now.Add(-time.Minute)}
	assert.Negative(t, expired.ExpiresIn(now))
}
