package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/attrition-advisor/internal/logger"
	"github.com/OldStager01/attrition-advisor/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTraceID_GeneratesAndPropagates(t *testing.T) {
	r := gin.New()
	r.Use(TraceID())
	var fromCtx string
	r.GET("/", func(c *gin.Context) {
		fromCtx = logger.TraceIDFromContext(c.Request.Context())
		c.String(http.StatusOK, GetTraceID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	traceID := w.Header().Get(TraceIDHeader)
	require.NotEmpty(t, traceID)
	assert.Equal(t, traceID, w.Body.String())
	assert.Equal(t, traceID, fromCtx)
}

func TestTraceID_KeepsIncomingHeader(t *testing.T) {
	r := gin.New()
	r.Use(TraceID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "given-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "given-id", w.Header().Get(TraceIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(CORSConfigFrom(config.CORSConfig{AllowedOrigins: []string{"http://hr.local"}})))
	r.POST("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name         string
		method       string
		origin       string
		expectStatus int
		expectOrigin string
	}{
		{name: "allowed origin", method: http.MethodPost, origin: "http://hr.local", expectStatus: http.StatusOK, expectOrigin: "http://hr.local"},
		{name: "other origin", method: http.MethodPost, origin: "http://evil.local", expectStatus: http.StatusOK, expectOrigin: ""},
		{name: "preflight", method: http.MethodOptions, origin: "http://hr.local", expectStatus: http.StatusNoContent, expectOrigin: "http://hr.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectStatus, w.Code)
			assert.Equal(t, tt.expectOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRequestSizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "connect-src 'self' ws: wss:")
}

func TestRequestLogger_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	r := gin.New()
	r.Use(RequestLogger("/health"), TraceID())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String(), "quiet path should log below info")

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(TraceIDHeader, "trace-abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "client error", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "unmatched", entry["route"])
	assert.Equal(t, "trace-abc", entry["trace_id"])
	assert.EqualValues(t, http.StatusNotFound, entry["status"])
}
