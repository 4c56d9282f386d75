package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/OldStager01/attrition-advisor/internal/events"
	"github.com/OldStager01/attrition-advisor/pkg/models"
)

type stubExporter struct {
	err     error
	results []*models.PredictionResult
}

func (e *stubExporter) Export(result *models.PredictionResult) ([]byte, error) {
	e.results = append(e.results, result)
	if e.err != nil {
		return nil, e.err
	}
	return []byte("%PDF-" + result.ID), nil
}

func newTestSession(p float64) (*Session, *stubClassifier, *stubExporter) {
	stub := withProbability(p)
	exporter := &stubExporter{}
	return NewSession(New(stub), exporter, nil), stub, exporter
}

func TestSession_StartsIdle(t *testing.T) {
	s, _, _ := newTestSession(0.5)

	snap := s.Snapshot()

	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, models.DefaultProfile(), snap.Profile)
	assert.Nil(t, snap.Result)
	assert.Equal(t, IdlePrompt, snap.Prompt)
	assert.False(t, snap.HasReport)
}

func TestSession_PredictShowsResult(t *testing.T) {
	s, _, _ := newTestSession(0.7)

	snap, err := s.Predict(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateResultShown, snap.State)
	require.NotNil(t, snap.Result)
	assert.Equal(t, models.RiskHigh, snap.Result.RiskTier)
	assert.Equal(t, 70, snap.Result.Indicator)
	assert.Equal(t, Headline(models.RiskHigh), snap.Headline)
	assert.Empty(t, snap.Prompt)
}

func TestSession_ProfileChangeClearsStaleResult(t *testing.T) {
	s, _, _ := newTestSession(0.7)
	ctx := context.Background()

	_, err := s.Predict(ctx)
	require.NoError(t, err)
	_, err = s.GenerateReport(ctx)
	require.NoError(t, err)

	changed := models.DefaultProfile()
	changed.Age = 45
	snap := s.UpdateProfile(ctx, changed)

	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Result)
	assert.False(t, snap.HasReport)
	assert.Equal(t, 45, snap.Profile.Age)

	_, ok := s.Report()
	assert.False(t, ok)
}

func TestSession_UnchangedProfileKeepsResult(t *testing.T) {
	s, _, _ := newTestSession(0.7)
	ctx := context.Background()

	_, err := s.Predict(ctx)
	require.NoError(t, err)

	snap := s.UpdateProfile(ctx, models.DefaultProfile())

	assert.Equal(t, StateResultShown, snap.State)
	assert.NotNil(t, snap.Result)
}

func TestSession_UpdateProfileClamps(t *testing.T) {
	s, _, _ := newTestSession(0.5)

	snap := s.UpdateProfile(context.Background(), models.EmployeeProfile{
		Age: 100, MonthlyIncome: 1, OverTime: "yes", JobSatisfaction: 3, WorkLifeBalance: 9, YearsAtCompany: 5,
	})

	assert.Equal(t, models.EmployeeProfile{
		Age: 60, MonthlyIncome: 1000, OverTime: models.OverTimeYes, JobSatisfaction: 3, WorkLifeBalance: 4, YearsAtCompany: 5,
	}, snap.Profile)
}

func TestSession_SubmitAndPredictUsesSubmittedProfile(t *testing.T) {
	s, stub, _ := newTestSession(0.3)

	p := models.DefaultProfile()
	p.OverTime = models.OverTimeYes

	snap, err := s.SubmitAndPredict(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, StateResultShown, snap.State)
	assert.Equal(t, models.RiskLow, snap.Result.RiskTier)
	assert.Equal(t, []float64{30, 5000, 1, 3, 3, 5}, stub.records[0].Values)
}

func TestSession_PredictFailurePreservesProfile(t *testing.T) {
	stub := &stubClassifier{err: classifier.ErrSchemaMismatch}
	s := NewSession(New(stub), &stubExporter{}, nil)

	p := models.DefaultProfile()
	p.YearsAtCompany = 12

	snap, err := s.SubmitAndPredict(context.Background(), p)

	assert.ErrorIs(t, err, ErrInference)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 12, snap.Profile.YearsAtCompany)
	assert.Nil(t, snap.Result)
}

func TestSession_GenerateReportRequiresPrediction(t *testing.T) {
	s, _, exporter := newTestSession(0.5)

	_, err := s.GenerateReport(context.Background())

	assert.ErrorIs(t, err, ErrNoPrediction)
	assert.Empty(t, exporter.results)
}

func TestSession_GenerateReportReusesDisplayedResult(t *testing.T) {
	s, stub, exporter := newTestSession(0.41)
	ctx := context.Background()

	snap, err := s.Predict(ctx)
	require.NoError(t, err)

	data, err := s.GenerateReport(ctx)
	require.NoError(t, err)

	require.Len(t, exporter.results, 1)
	assert.Equal(t, snap.Result.ID, exporter.results[0].ID)
	assert.Equal(t, 0.41, exporter.results[0].Probability)
	assert.Len(t, stub.records, 1, "report must not re-run inference")

	assert.Equal(t, StateReportAvailable, s.Snapshot().State)
	stored, ok := s.Report()
	require.True(t, ok)
	assert.Equal(t, data, stored)
}

func TestSession_ExportFailureKeepsResult(t *testing.T) {
	stub := withProbability(0.8)
	s := NewSession(New(stub), &stubExporter{err: errors.New("font missing")}, nil)
	ctx := context.Background()

	before, err := s.Predict(ctx)
	require.NoError(t, err)

	_, err = s.GenerateReport(ctx)
	assert.ErrorIs(t, err, ErrExport)

	after := s.Snapshot()
	assert.Equal(t, StateResultShown, after.State)
	assert.Equal(t, before.Result.ID, after.Result.ID)
}

func TestSession_RepredictDropsReport(t *testing.T) {
	s, _, _ := newTestSession(0.5)
	ctx := context.Background()

	_, err := s.Predict(ctx)
	require.NoError(t, err)
	_, err = s.GenerateReport(ctx)
	require.NoError(t, err)

	snap, err := s.Predict(ctx)
	require.NoError(t, err)

	assert.Equal(t, StateResultShown, snap.State)
	assert.False(t, snap.HasReport)
}

func TestSession_PublishesTransitions(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()
	ch := bus.SubscribeAll()

	s := NewSession(New(withProbability(0.7)), &stubExporter{}, events.NewPublisher(bus))
	ctx := context.Background()

	_, err := s.Predict(ctx)
	require.NoError(t, err)
	_, err = s.GenerateReport(ctx)
	require.NoError(t, err)
	changed := models.DefaultProfile()
	changed.JobSatisfaction = 1
	s.UpdateProfile(ctx, changed)

	var got []models.EventType
	for len(got) < 4 {
		select {
		case e := <-ch:
			got = append(got, e.Type)
		case <-time.After(time.Second):
			t.Fatalf("timeout, got %v", got)
		}
	}

	assert.Equal(t, []models.EventType{
		models.EventTypePredictionMade,
		models.EventTypeReportGenerated,
		models.EventTypeProfileUpdated,
		models.EventTypeResultCleared,
	}, got)
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s, _, _ := newTestSession(0.7)

	snap, err := s.Predict(context.Background())
	require.NoError(t, err)
	snap.Result.Recommendations[0] = "mutated"

	assert.Equal(t, Recommendations(models.RiskHigh), s.Snapshot().Result.Recommendations)
}
