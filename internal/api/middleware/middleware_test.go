package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/auth"
	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/config"
)

func authTestRouter(jwtSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(jwtSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextKeyUserID)})
	})
	r.GET("/admin", AuthMiddleware(jwtSecret), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := authTestRouter("test-secret")

	// No header.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed header.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Bad token.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token.
	token, err := auth.GenerateJWT("user-1", "alice@example.com", false, "test-secret", time.Hour)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAdminMiddleware(t *testing.T) {
	r := authTestRouter("test-secret")

	userToken, err := auth.GenerateJWT("user-1", "alice@example.com", false, "test-secret", time.Hour)
	require.NoError(t, err)
	adminToken, err := auth.GenerateJWT("admin-1", "root@example.com", true, "test-secret", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterMiddleware_HardLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		// Generous soft bucket so only the hard limit bites here.
		RateLimitSoftBucketSize: 100,
		RateLimitSoftRefillRate: 100,
		RateLimitHardBucketSize: 3,
		RateLimitHardRefillRate: 1,
	}
	rm := NewRateLimiterMiddleware(cfg)

	r := gin.New()
	r.GET("/ping", rm.Limit(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimiterMiddleware_KeyedByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		RateLimitSoftBucketSize: 100,
		RateLimitSoftRefillRate: 100,
		RateLimitHardBucketSize: 2,
		RateLimitHardRefillRate: 1,
	}
	rm := NewRateLimiterMiddleware(cfg)

	r := gin.New()
	r.GET("/ping", rm.Limit(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	serveFrom := func(remoteAddr string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = remoteAddr
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Exhaust the first client's hard bucket.
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serveFrom("10.0.0.1:1000"))
	}
	assert.Equal(t, http.StatusTooManyRequests, serveFrom("10.0.0.1:1000"))

	// A different client IP has its own bucket.
	assert.Equal(t, http.StatusOK, serveFrom("10.0.0.2:1000"))

	// Ports are not part of the identity, only the IP is.
	rm.mu.Lock()
	_, ok := rm.clients["10.0.0.1"]
	rm.mu.Unlock()
	assert.True(t, ok)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware("https://app.example.com"))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
