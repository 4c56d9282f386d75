package advisor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/OldStager01/attrition-advisor/internal/events"
	"github.com/OldStager01/attrition-advisor/internal/logger"
	"github.com/OldStager01/attrition-advisor/internal/metrics"
	"github.com/OldStager01/attrition-advisor/pkg/models"
)

var (
	ErrNoPrediction = errors.New("no prediction to report on")
	ErrExport       = errors.New("report export failed")
)

type State string

const (
	StateIdle            State = "idle"
	StateResultShown     State = "result_shown"
	StateReportAvailable State = "report_available"
)

type Predictor interface {
	Predict(ctx context.Context, profile models.EmployeeProfile) (*models.PredictionResult, error)
}

// Exporter renders a finished prediction into a downloadable document.
type Exporter interface {
	Export(result *models.PredictionResult) ([]byte, error)
}

// Snapshot is a copy of the session suitable for rendering.
type Snapshot struct {
	State     State                    `json:"state"`
	Profile   models.EmployeeProfile   `json:"profile"`
	Result    *models.PredictionResult `json:"result,omitempty"`
	Headline  string                   `json:"headline,omitempty"`
	Prompt    string                   `json:"prompt,omitempty"`
	HasReport bool                     `json:"has_report"`
}

// Session holds the form state machine: idle -> result_shown ->
// report_available. Any profile change drops a shown result back to idle.
type Session struct {
	mu        sync.Mutex
	predictor Predictor
	exporter  Exporter
	publisher *events.Publisher

	state   State
	profile models.EmployeeProfile
	result  *models.PredictionResult
	report  []byte
}

func NewSession(predictor Predictor, exporter Exporter, publisher *events.Publisher) *Session {
	return &Session{
		predictor: predictor,
		exporter:  exporter,
		publisher: publisher,
		state:     StateIdle,
		profile:   models.DefaultProfile(),
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// UpdateProfile stores the clamped profile. A result computed from a
// different profile is cleared rather than left on screen.
func (s *Session) UpdateProfile(ctx context.Context, profile models.EmployeeProfile) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateProfileLocked(ctx, profile.Clamp())
	return s.snapshotLocked()
}

func (s *Session) Predict(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.predictLocked(ctx)
}

// SubmitAndPredict applies the submitted form values and runs a prediction
// on them in one step.
func (s *Session) SubmitAndPredict(ctx context.Context, profile models.EmployeeProfile) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateProfileLocked(ctx, profile.Clamp())
	return s.predictLocked(ctx)
}

// GenerateReport exports the result currently on display. The displayed
// result is never touched, even on failure.
func (s *Session) GenerateReport(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	publisher := s.publisher.WithTraceID(logger.TraceIDFromContext(ctx))

	if s.result == nil {
		return nil, ErrNoPrediction
	}

	data, err := s.exporter.Export(s.result)
	if err != nil {
		metrics.IncReport("error")
		logger.ErrorCtxf(ctx, "Report export failed: %v", err)
		publisher.ReportFailed(string(s.state), err)
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	s.report = data
	s.state = StateReportAvailable
	metrics.IncReport("success")
	logger.WithPrediction(ctx, s.result.ID, string(s.result.RiskTier)).
		WithField("bytes", len(data)).
		Info("Report generated")
	publisher.ReportGenerated(string(s.state), s.result.ID, len(data))

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Report returns the last generated document, if the session has one.
func (s *Session) Report() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReportAvailable || s.report == nil {
		return nil, false
	}
	out := make([]byte, len(s.report))
	copy(out, s.report)
	return out, true
}

func (s *Session) updateProfileLocked(ctx context.Context, profile models.EmployeeProfile) {
	publisher := s.publisher.WithTraceID(logger.TraceIDFromContext(ctx))

	if profile == s.profile {
		return
	}
	s.profile = profile
	publisher.ProfileUpdated(string(s.state), profile)

	if s.result != nil && s.result.Profile != profile {
		previous := s.result.ID
		s.result = nil
		s.report = nil
		s.state = StateIdle
		logger.DebugCtxf(ctx, "Profile changed, cleared prediction %s", previous)
		publisher.ResultCleared(string(s.state), previous)
	}
}

func (s *Session) predictLocked(ctx context.Context) (Snapshot, error) {
	publisher := s.publisher.WithTraceID(logger.TraceIDFromContext(ctx))

	result, err := s.predictor.Predict(ctx, s.profile)
	if err != nil {
		publisher.PredictionFailed(string(s.state), err)
		return s.snapshotLocked(), err
	}

	s.result = result
	s.report = nil
	s.state = StateResultShown
	publisher.PredictionMade(string(s.state), result)

	return s.snapshotLocked(), nil
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     s.state,
		Profile:   s.profile,
		HasReport: s.state == StateReportAvailable && s.report != nil,
	}

	if s.result == nil {
		snap.Prompt = IdlePrompt
		return snap
	}

	result := *s.result
	result.Recommendations = append([]string(nil), s.result.Recommendations...)
	snap.Result = &result
	snap.Headline = Headline(result.RiskTier)
	return snap
}
