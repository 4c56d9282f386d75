package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_predictions_total",
			Help: "Total number of attrition predictions by risk tier",
		},
		[]string{"risk_tier"},
	)

	InferenceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_inference_errors_total",
			Help: "Total number of failed inference calls",
		},
		[]string{"reason"},
	)

	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisor_inference_duration_seconds",
			Help:    "Duration of a single classifier call in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
	)

	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_reports_total",
			Help: "Total number of report exports by outcome",
		},
		[]string{"status"},
	)

	ModelInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "advisor_model_info",
			Help: "Loaded classifier artifact, value is always 1",
		},
		[]string{"name", "version", "kind"},
	)

	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisor_websocket_clients",
			Help: "Number of connected live-session clients",
		},
	)
)

func ObservePrediction(tier string, duration time.Duration) {
	PredictionsTotal.WithLabelValues(tier).Inc()
	InferenceDuration.Observe(duration.Seconds())
}

func IncInferenceError(reason string) {
	InferenceErrorsTotal.WithLabelValues(reason).Inc()
}

func IncReport(status string) {
	ReportsTotal.WithLabelValues(status).Inc()
}

func SetModelInfo(name, version, kind string) {
	ModelInfo.Reset()
	ModelInfo.WithLabelValues(name, version, kind).Set(1)
}
