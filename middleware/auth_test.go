package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidshare/backend/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testCfg() *config.Config {
	return &config.Config{JWTSecret: testSecret}
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRig(handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handlers := append([]gin.HandlerFunc{handler}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(CtxUserID),
			"role":   c.GetString(CtxRole),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	r := authRig(NewAuthMiddleware(testCfg()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token was provided")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := authRig(NewAuthMiddleware(testCfg()))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token provided")
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	r := authRig(NewAuthMiddleware(testCfg()))

	token := signTestToken(t, "other-secret", jwt.MapClaims{
		"id":   "abc",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	r := authRig(NewAuthMiddleware(testCfg()))

	token := signTestToken(t, testSecret, jwt.MapClaims{
		"id":   "abc",
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := authRig(NewAuthMiddleware(testCfg()))

	token := signTestToken(t, testSecret, jwt.MapClaims{
		"id":   "66b1f0a1c2d3e4f5a6b7c8d9",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "66b1f0a1c2d3e4f5a6b7c8d9")
	assert.Contains(t, w.Body.String(), "admin")
}

func TestOptionalAuthMiddlewareNoToken(t *testing.T) {
	r := authRig(NewOptionalAuthMiddleware(testCfg()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthMiddlewareBadTokenStillPasses(t *testing.T) {
	r := authRig(NewOptionalAuthMiddleware(testCfg()))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "garbage")
}

func TestRequireAdminRejectsUser(t *testing.T) {
	r := authRig(NewAuthMiddleware(testCfg()), RequireAdmin())

	token := signTestToken(t, testSecret, jwt.MapClaims{
		"id":   "abc",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not authorized")
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r := authRig(NewAuthMiddleware(testCfg()), RequireAdmin())

	token := signTestToken(t, testSecret, jwt.MapClaims{
		"id":   "abc",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
