package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/attrition-advisor/internal/advisor"
	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/OldStager01/attrition-advisor/internal/events"
	"github.com/OldStager01/attrition-advisor/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:            "attrition-advisor",
			Mode:            "test",
			LogLevel:        "error",
			ShutdownTimeout: time.Second,
		},
		Model: config.ModelConfig{Path: "../models/attrition_model.json"},
		API: config.APIConfig{
			Port:         8501,
			MaxBodyBytes: 4096,
		},
		Report: config.ReportConfig{
			Title:    "Attrition Prediction Summary",
			Footer:   "HR Attrition Prediction Agent",
			Filename: "attrition-report.pdf",
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Events:  config.EventsConfig{BufferSize: 16},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := testConfig()
	model, err := classifier.LoadFile(cfg.Model.Path)
	require.NoError(t, err)

	bus := events.NewEventBus(cfg.Events.BufferSize)
	s := NewServer(cfg, advisor.New(model), bus)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, s.Shutdown(ctx))
		bus.Close()
	})
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/api/v1/model", http.StatusOK},
		{http.MethodGet, "/report", http.StatusNotFound},
		{http.MethodPost, "/report", http.StatusConflict},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(s, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestServer_MiddlewareHeaders(t *testing.T) {
	s := newTestServer(t)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	w = serve(s, req)
	assert.Equal(t, "trace-123", w.Header().Get("X-Trace-ID"))
}

func TestServer_RejectsOversizedBody(t *testing.T) {
	s := newTestServer(t)

	body := bytes.Repeat([]byte("a"), 8192)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := serve(s, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestServer_FormFlowWithShippedModel(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{
		"age":               {"28"},
		"monthly_income":    {"3000"},
		"overtime":          {"Yes"},
		"job_satisfaction":  {"1"},
		"work_life_balance": {"1"},
		"years_at_company":  {"1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := serve(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Predicted Attrition Risk")

	snap := s.Session().Snapshot()
	require.NotNil(t, snap.Result)
	assert.Equal(t, advisor.StateResultShown, snap.State)
	assert.Equal(t, advisor.TierFor(snap.Result.Probability), snap.Result.RiskTier)

	w = serve(s, httptest.NewRequest(http.MethodPost, "/report", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	assert.Equal(t, advisor.StateReportAvailable, s.Session().Snapshot().State)

	w = serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "advisor_predictions_total")
	assert.Contains(t, w.Body.String(), "advisor_reports_total")
}
