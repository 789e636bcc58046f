package utils

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextFor(t *testing.T, configure func(*http.Request)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest("POST", "/api/upload", nil)
	require.NoError(t, err)
	req.Host = "booking.example.com"
	if configure != nil {
		configure(req)
	}
	c.Request = req
	return c
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*http.Request)
		override  string
		want      string
	}{
		{"plain http", nil, "", "http://booking.example.com"},
		{"tls", func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, "", "https://booking.example.com"},
		{"forwarded https", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "HTTPS") }, "", "https://booking.example.com"},
		{"forwarded junk ignored", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "javascript") }, "", "http://booking.example.com"},
		{"forwarded url ignored", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https://evil.example/x?") }, "", "http://booking.example.com"},
		{"override wins", func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") }, "https://api.example.com/", "https://api.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseURL(contextFor(t, tt.configure), tt.override))
		})
	}
}

func TestParseDateTime(t *testing.T) {
	local := time.Date(2024, 1, 1, 19, 0, 0, 0, time.Local)

	for _, in := range []string{"2024-01-01T19:00:00", "2024-01-01T19:00", "2024-01-01 19:00:00", " 2024-01-01T19:00 "} {
		got, err := ParseDateTime(in)
		require.NoError(t, err, in)
		assert.True(t, local.Equal(got), in)
	}

	got, err := ParseDateTime("2024-01-01T19:00:00Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC).Equal(got))

	_, err = ParseDateTime("tomorrow")
	assert.Error(t, err)
}
