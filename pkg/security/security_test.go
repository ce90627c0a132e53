package security

import (
	"context"
	"cyberar_admin_backend/internal/config"
	"cyberar_admin_backend/internal/util"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestCORSAllowsWhitelistedOrigin(t *testing.T) {
	r := newEngine(CORS(config.CORSConfig{AllowedOrigins: []string{"https://console.example.com"}}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://console.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORS(config.CORSConfig{}))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecureHeaders(t *testing.T) {
	r := newEngine(Secure())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newEngine(RateLimiter(ctx, 2, time.Hour))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSPreflightUsesConfiguredMethodsAndHeaders(t *testing.T) {
	r := newEngine(CORS(config.CORSConfig{
		AllowedOrigins: []string{"https://console.example.com"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Authorization"},
		MaxAgeSeconds:  300,
	}))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://console.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, HEAD, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "300", w.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightDefaults(t *testing.T) {
	r := newEngine(CORS(config.CORSConfig{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ping", nil))

	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))
}

func TestRateLimiterAnswersWithEnvelope(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newEngine(RateLimiter(ctx, 1, time.Minute))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var body util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusTooManyRequests, body.Code)
	assert.Equal(t, tooManyRequests, body.Message)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestVisitorsPrune(t *testing.T) {
	v := newVisitors(10, time.Minute)
	now := time.Now()
	v.get("10.0.0.1", now.Add(-time.Hour))
	v.get("10.0.0.2", now)

	v.prune(now)
	assert.Equal(t, 1, v.size())
}

func TestVisitorsCleanupStopsWithContext(t *testing.T) {
	v := newVisitors(10, time.Minute)
	v.get("10.0.0.1", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		v.cleanup(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return v.size() == 0 }, time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
