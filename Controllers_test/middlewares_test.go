package Controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/table-booking/middlewares"
)

func pingRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func sendRequest(router *gin.Engine, method string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, "/ping", nil)
	req.RemoteAddr = "192.0.2.10:40000"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	router := pingRouter(middlewares.NewRateLimiter(1, 3).RateLimit())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, sendRequest(router, "GET", nil).Code, "request %d", i+1)
	}

	w := sendRequest(router, "GET", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = "192.0.2.11:40000"
	other := httptest.NewRecorder()
	router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code, "other clients keep their own bucket")
}

func TestRateLimitDisabled(t *testing.T) {
	router := pingRouter(middlewares.NewRateLimiter(0, 1).RateLimit())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, sendRequest(router, "GET", nil).Code)
	}
}

func TestCORSAllowList(t *testing.T) {
	router := pingRouter(middlewares.CORSMiddlewares([]string{"http://localhost:4200"}))

	w := sendRequest(router, "GET", map[string]string{"Origin": "http://localhost:4200"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))

	w = sendRequest(router, "GET", map[string]string{"Origin": "http://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = sendRequest(router, "OPTIONS", map[string]string{"Origin": "http://localhost:4200"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCORSWildcard(t *testing.T) {
	router := pingRouter(middlewares.CORSMiddlewares([]string{"*"}))

	w := sendRequest(router, "GET", map[string]string{"Origin": "http://anywhere.example"})
	assert.Equal(t, "http://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	router := pingRouter(middlewares.LoggerMiddleware())

	w := sendRequest(router, "GET", map[string]string{middlewares.RequestIDHeader: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(middlewares.RequestIDHeader))

	first := sendRequest(router, "GET", nil).Header().Get(middlewares.RequestIDHeader)
	second := sendRequest(router, "GET", nil).Header().Get(middlewares.RequestIDHeader)
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestSecurityHeaders(t *testing.T) {
	router := pingRouter(middlewares.SecurityHeaders())

	w := sendRequest(router, "GET", nil)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
