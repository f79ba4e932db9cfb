package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saurabhkjha/studymaterial-backend/internal/auth"
	"github.com/saurabhkjha/studymaterial-backend/internal/middleware"
)

const (
	testEmail    = "admin@saurabhjha.co.in"
	testPassword = "correct horse battery staple"
	testSecret   = "test-secret"
)

func newTestVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(testEmail, testPassword, testSecret)
	require.NoError(t, err)
	return v
}

// callWithHeader runs a request through JWTAuth and reports whether the
// protected handler ran, the claims it saw and the handler error.
func callWithHeader(verifier *auth.Verifier, header string) (bool, *auth.AdminClaims, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var seen *auth.AdminClaims
	h := middleware.JWTAuth(verifier)(func(c echo.Context) error {
		called = true
		seen, _ = c.Get("admin").(*auth.AdminClaims)
		return c.NoContent(http.StatusOK)
	})
	return called, seen, h(c)
}

func signToken(t *testing.T, secret string, claims *auth.AdminClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWTAuthMissingHeader(t *testing.T) {
	called, _, err := callWithHeader(newTestVerifier(t), "")

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Missing Authorization header", he.Message)
	assert.False(t, called)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	verifier := newTestVerifier(t)
	for _, header := range []string{
		"Basic dXNlcjpwYXNz",
		"Bearer",
		"Bearer one two",
		"just-a-token",
	} {
		called, _, err := callWithHeader(verifier, header)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, header)
		assert.Equal(t, http.StatusUnauthorized, he.Code, header)
		assert.Equal(t, "Invalid Authorization header format", he.Message, header)
		assert.False(t, called, header)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	verifier := newTestVerifier(t)
	token := signToken(t, testSecret, &auth.AdminClaims{
		Email: testEmail,
		Role:  auth.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-3 * time.Hour)),
		},
	})

	called, _, err := callWithHeader(verifier, "Bearer "+token)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Token expired", he.Message)
	assert.False(t, called)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	verifier := newTestVerifier(t)
	token := signToken(t, "some-other-secret", &auth.AdminClaims{
		Email: testEmail,
		Role:  auth.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	called, _, err := callWithHeader(verifier, "Bearer "+token)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "Invalid token", he.Message)
	assert.False(t, called)
}

func TestJWTAuthRejectsNonAdminRole(t *testing.T) {
	verifier := newTestVerifier(t)
	token := signToken(t, testSecret, &auth.AdminClaims{
		Email: "someone@saurabhjha.co.in",
		Role:  "editor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	called, _, err := callWithHeader(verifier, "Bearer "+token)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, "Admin role required", he.Message)
	assert.False(t, called)
}

func TestJWTAuthValidTokenPasses(t *testing.T) {
	verifier := newTestVerifier(t)
	token, err := verifier.Login(testEmail, testPassword)
	require.NoError(t, err)

	called, claims, hErr := callWithHeader(verifier, "Bearer "+token)

	require.NoError(t, hErr)
	assert.True(t, called)
	require.NotNil(t, claims)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}
