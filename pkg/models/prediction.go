package models

import (
	"math"
	"time"
)

type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

func (t RiskTier) IsValid() bool {
	switch t {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// PredictionResult is derived on demand and never stored beyond the session.
type PredictionResult struct {
	ID              string          `json:"id" example:"4f9f7a2e-9d0b-4d3e-8a4c-1b7f3c2d9e10"`
	Profile         EmployeeProfile `json:"profile"`
	Probability     float64         `json:"probability" example:"0.41"`
	RiskTier        RiskTier        `json:"risk_tier" example:"Medium"`
	Recommendations []string        `json:"recommendations"`
	Indicator       int             `json:"indicator" example:"41"`
	ModelVersion    string          `json:"model_version,omitempty" example:"1.0.0"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewPredictionResult(profile EmployeeProfile, probability float64, tier RiskTier, recommendations []string) *PredictionResult {
	return &PredictionResult{
		ID:              NewUUID(),
		Profile:         profile,
		Probability:     probability,
		RiskTier:        tier,
		Recommendations: recommendations,
		Indicator:       IndicatorValue(probability),
		CreatedAt:       time.Now(),
	}
}

// IndicatorValue scales a probability onto the 0-100 progress indicator.
func IndicatorValue(probability float64) int {
	v := int(math.Floor(probability * 100))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Equal compares the displayed outcome of two results, ignoring identity.
func (r *PredictionResult) Equal(other *PredictionResult) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Profile != other.Profile || r.Probability != other.Probability ||
		r.RiskTier != other.RiskTier || r.Indicator != other.Indicator {
		return false
	}
	if len(r.Recommendations) != len(other.Recommendations) {
		return false
	}
	for i := range r.Recommendations {
		if r.Recommendations[i] != other.Recommendations[i] {
			return false
		}
	}
	return true
}
