package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func defaultClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "11111111-1111-1111-1111-111111111111",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"aud":   "authenticated",
		"email": "test@example.com",
	}
}

func TestVerifyValidToken(t *testing.T) {
	policy := Policy{EnforceAudience: true, Audience: "authenticated"}
	token := signedToken(t, testSecret, defaultClaims())

	claims, err := Verify("Bearer "+token, testSecret, policy)
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("11111111-1111-1111-1111-111111111111"), claims.Subject)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestVerifyNoCredential(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"empty_header", ""},
		{"no_bearer_prefix", "Token abcdef"},
		{"bearer_without_token", "Bearer "},
		{"basic_auth", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.header, testSecret, Policy{})
			require.Error(t, err)
			assert.True(t, IsNoCredential(err))
		})
	}
}

func TestVerifyFailures(t *testing.T) {
	policy := Policy{EnforceAudience: true, Audience: "authenticated"}

	expired := defaultClaims()
	expired["exp"] = time.Now().Add(-time.Second).Unix()

	wrongAudience := defaultClaims()
	wrongAudience["aud"] = "anon"

	missingSub := defaultClaims()
	delete(missingSub, "sub")

	badSub := defaultClaims()
	badSub["sub"] = "not-a-uuid"

	missingExp := defaultClaims()
	delete(missingExp, "exp")

	tests := []struct {
		name  string
		token string
		want  Classification
	}{
		{"expired", signedToken(t, testSecret, expired), ClassExpired},
		{"expired_wrong_key", signedToken(t, []byte("other-secret"), expired), ClassExpired},
		{"wrong_key", signedToken(t, []byte("other-secret"), defaultClaims()), ClassBadSignature},
		{"wrong_audience", signedToken(t, testSecret, wrongAudience), ClassAudienceMismatch},
		{"missing_sub", signedToken(t, testSecret, missingSub), ClassMalformedSubject},
		{"malformed_sub", signedToken(t, testSecret, badSub), ClassMalformedSubject},
		{"missing_exp", signedToken(t, testSecret, missingExp), ClassMalformedCredential},
		{"garbage", "not.a.jwt", ClassMalformedCredential},
		{"truncated", signedToken(t, testSecret, defaultClaims())[:25], ClassMalformedCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Verify("Bearer "+tt.token, testSecret, policy)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Equal(t, tt.want, ClassificationOf(err))
		})
	}
}

func TestVerifyRejectsNonHMACAlgorithms(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	rsaToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, defaultClaims()).SignedString(key)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, defaultClaims()).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{"rs256": rsaToken, "none": noneToken} {
		t.Run(name, func(t *testing.T) {
			_, err := Verify("Bearer "+token, testSecret, Policy{})
			require.Error(t, err)
			assert.Equal(t, ClassAlgorithmMismatch, ClassificationOf(err))
		})
	}
}

func TestVerifyAudienceNotEnforced(t *testing.T) {
	claims := defaultClaims()
	claims["aud"] = "something-else"
	token := signedToken(t, testSecret, claims)

	_, err := Verify("Bearer "+token, testSecret, Policy{EnforceAudience: false})
	assert.NoError(t, err)
}

func TestVerifyErrorNeverContainsToken(t *testing.T) {
	token := signedToken(t, []byte("other-secret"), defaultClaims())
	_, err := Verify("Bearer "+token, testSecret, Policy{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), token)
}
