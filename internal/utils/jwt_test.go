package utils

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTUtil_RoundTripPerRole(t *testing.T) {
	jwtUtil := NewJWTUtil("portal-secret", 2)

	cases := []struct {
		name   string
		userID int64
		role   string
	}{
		{"employer token", 7, "employer"},
		{"candidate token", 12, "candidate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokenString, err := jwtUtil.GenerateToken(tc.userID, tc.role)
			require.NoError(t, err)
			require.NotEmpty(t, tokenString)

			claims, err := jwtUtil.ValidateToken(tokenString)
			require.NoError(t, err)
			assert.Equal(t, tc.userID, claims.UserID)
			assert.Equal(t, tc.role, claims.Role)
			assert.Equal(t, strconv.FormatInt(tc.userID, 10), claims.Subject)
			assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestJWTUtil_GarbageTokenRejected(t *testing.T) {
	jwtUtil := NewJWTUtil("portal-secret", 2)

	_, err := jwtUtil.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTUtil_ExpiredTokenRejected(t *testing.T) {
	jwtUtil := NewJWTUtil("portal-secret", -1)

	tokenString, err := jwtUtil.GenerateToken(7, "employer")
	require.NoError(t, err)

	_, err = jwtUtil.ValidateToken(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

// A token minted under a different secret must not authenticate, e.g. after
// a secret rotation.
func TestJWTUtil_WrongSecretRejected(t *testing.T) {
	oldUtil := NewJWTUtil("old-secret", 2)
	newUtil := NewJWTUtil("new-secret", 2)

	tokenString, err := oldUtil.GenerateToken(12, "candidate")
	require.NoError(t, err)

	_, err = newUtil.ValidateToken(tokenString)
	assert.Error(t, err)
}

// Only HMAC algorithms are accepted; an unsigned token is refused before
// claims are even looked at.
func TestJWTUtil_NonHMACAlgorithmRejected(t *testing.T) {
	jwtUtil := NewJWTUtil("portal-secret", 2)

	claims := &JWTClaims{
		UserID: 12,
		Role:   "candidate",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwtUtil.ValidateToken(tokenString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected signing method")
}
