package advisor

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/OldStager01/attrition-advisor/pkg/models"
	"github.com/OldStager01/attrition-advisor/pkg/validation"
)

// stubClassifier returns a fixed distribution and records what it was fed.
type stubClassifier struct {
	proba   []float64
	err     error
	records []models.FeatureRecord
}

func (s *stubClassifier) PredictProba(record models.FeatureRecord) ([]float64, error) {
	s.records = append(s.records, record)
	if s.err != nil {
		return nil, s.err
	}
	return s.proba, nil
}

func (s *stubClassifier) Info() classifier.ModelInfo {
	return classifier.ModelInfo{Name: "stub", Version: "test", Kind: classifier.KindLogisticRegression}
}

func withProbability(p float64) *stubClassifier {
	return &stubClassifier{proba: []float64{1 - p, p}}
}

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		probability float64
		expected    models.RiskTier
	}{
		{0.0, models.RiskLow},
		{0.4, models.RiskLow},
		{0.4000001, models.RiskMedium},
		{0.41, models.RiskMedium},
		{0.65, models.RiskMedium},
		{0.6500001, models.RiskHigh},
		{0.7, models.RiskHigh},
		{1.0, models.RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TierFor(tt.probability), "probability %v", tt.probability)
	}
}

func TestTierFor_TotalOverUnitInterval(t *testing.T) {
	for i := 0; i <= 10000; i++ {
		p := float64(i) / 10000
		tier := TierFor(p)
		require.True(t, tier.IsValid(), "probability %v", p)

		switch {
		case p > 0.65:
			assert.Equal(t, models.RiskHigh, tier)
		case p > 0.4:
			assert.Equal(t, models.RiskMedium, tier)
		default:
			assert.Equal(t, models.RiskLow, tier)
		}
	}
}

func TestRecommendations(t *testing.T) {
	assert.Equal(t, []string{
		"Reduce overtime and improve work-life balance.",
		"Offer recognition or financial incentives.",
		"Provide career growth opportunities.",
	}, Recommendations(models.RiskHigh))
	assert.Equal(t, []string{
		"Schedule periodic engagement meetings.",
		"Monitor job satisfaction closely.",
		"Review compensation if below market average.",
	}, Recommendations(models.RiskMedium))
	assert.Equal(t, []string{
		"Maintain positive workplace environment.",
		"Continue performance recognition programs.",
	}, Recommendations(models.RiskLow))
}

func TestRecommendations_ReturnsCopy(t *testing.T) {
	recs := Recommendations(models.RiskLow)
	recs[0] = "changed"

	assert.Equal(t, "Maintain positive workplace environment.", Recommendations(models.RiskLow)[0])
}

func TestPredict_DefaultProfileFeatureRecord(t *testing.T) {
	stub := withProbability(0.2)
	a := New(stub)

	_, err := a.Predict(context.Background(), models.DefaultProfile())
	require.NoError(t, err)

	require.Len(t, stub.records, 1)
	assert.Equal(t, []float64{30, 5000, 0, 3, 3, 5}, stub.records[0].Values)
}

func TestPredict_OverTimeYesFeatureRecord(t *testing.T) {
	stub := withProbability(0.2)
	a := New(stub)

	p := models.DefaultProfile()
	p.OverTime = models.OverTimeYes

	_, err := a.Predict(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []float64{30, 5000, 1, 3, 3, 5}, stub.records[0].Values)
}

func TestPredict_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		tier        models.RiskTier
		indicator   int
	}{
		{name: "high", probability: 0.7, tier: models.RiskHigh, indicator: 70},
		{name: "medium", probability: 0.41, tier: models.RiskMedium, indicator: 41},
		{name: "low boundary", probability: 0.4, tier: models.RiskLow, indicator: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(withProbability(tt.probability))

			result, err := a.Predict(context.Background(), models.DefaultProfile())
			require.NoError(t, err)

			assert.Equal(t, tt.tier, result.RiskTier)
			assert.Equal(t, tt.indicator, result.Indicator)
			assert.Equal(t, tt.probability, result.Probability)
			assert.Equal(t, Recommendations(tt.tier), result.Recommendations)
			assert.Equal(t, "test", result.ModelVersion)
			assert.NotEmpty(t, result.ID)
		})
	}
}

func TestPredict_Idempotent(t *testing.T) {
	a := New(withProbability(0.55))
	profile := models.DefaultProfile()

	first, err := a.Predict(context.Background(), profile)
	require.NoError(t, err)
	second, err := a.Predict(context.Background(), profile)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestPredict_SameTierSameRecommendations(t *testing.T) {
	a := New(withProbability(0.9))

	young := models.DefaultProfile()
	older := models.DefaultProfile()
	older.Age = 55
	older.OverTime = models.OverTimeYes

	r1, err := a.Predict(context.Background(), young)
	require.NoError(t, err)
	r2, err := a.Predict(context.Background(), older)
	require.NoError(t, err)

	assert.Equal(t, r1.Recommendations, r2.Recommendations)
}

func TestPredict_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stub    *stubClassifier
		profile models.EmployeeProfile
		target  error
	}{
		{
			name:    "schema mismatch",
			stub:    &stubClassifier{err: classifier.ErrSchemaMismatch},
			profile: models.DefaultProfile(),
			target:  classifier.ErrSchemaMismatch,
		},
		{
			name:    "single class output",
			stub:    &stubClassifier{proba: []float64{1}},
			profile: models.DefaultProfile(),
			target:  ErrInference,
		},
		{
			name:    "probability above one",
			stub:    &stubClassifier{proba: []float64{0, 1.2}},
			profile: models.DefaultProfile(),
			target:  ErrInference,
		},
		{
			name:    "nan probability",
			stub:    &stubClassifier{proba: []float64{0, math.NaN()}},
			profile: models.DefaultProfile(),
			target:  ErrInference,
		},
		{
			name:    "out of range profile",
			stub:    withProbability(0.5),
			profile: models.EmployeeProfile{Age: 70, MonthlyIncome: 5000, OverTime: models.OverTimeNo, JobSatisfaction: 3, WorkLifeBalance: 3},
			target:  validation.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.stub)

			result, err := a.Predict(context.Background(), tt.profile)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestPredict_SchemaMismatchIsInferenceError(t *testing.T) {
	a := New(&stubClassifier{err: errors.Join(classifier.ErrSchemaMismatch, errors.New("expects 7 features"))})

	_, err := a.Predict(context.Background(), models.DefaultProfile())

	assert.ErrorIs(t, err, ErrInference)
	assert.Contains(t, err.Error(), "expects 7 features")
}
