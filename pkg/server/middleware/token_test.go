package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atol-data/metadata-broker/pkg/identity"
)

var testKey = []byte("test-signing-key")

func protectedHandler(t *testing.T, captured **identity.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		require.True(t, ok, "identity should be set on the request context")
		*captured = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareAcceptsIssuedToken(t *testing.T) {
	token, err := Issue(testKey, "curator-1", []string{identity.RoleCurator}, time.Minute)
	require.NoError(t, err)

	var captured *identity.Identity
	handler := NewTokenAuthenticator(testKey).Middleware(protectedHandler(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/records/sample/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "curator-1", captured.Login)
	assert.True(t, captured.CanCurate())
	assert.False(t, captured.IsPrivileged())
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := NewTokenAuthenticator(testKey).Middleware(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	handler := NewTokenAuthenticator(testKey).Middleware(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsWrongKey(t *testing.T) {
	token, err := Issue([]byte("other-key"), "curator-1", nil, time.Minute)
	require.NoError(t, err)

	handler := NewTokenAuthenticator(testKey).Middleware(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	token, err := Issue(testKey, "curator-1", nil, -time.Minute)
	require.NoError(t, err)

	handler := NewTokenAuthenticator(testKey).Middleware(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsUnsignedAlg(t *testing.T) {
	// alg=none must never pass, regardless of claims.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "attacker",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	handler := NewTokenAuthenticator(testKey).Middleware(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsTokenWithoutSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"roles": []string{identity.RoleAdmin},
		"exp":   time.Now().Add(time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	handler := NewTokenAuthenticator(testKey).Middleware(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
