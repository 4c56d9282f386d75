package advisor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/OldStager01/attrition-advisor/internal/logger"
	"github.com/OldStager01/attrition-advisor/internal/metrics"
	"github.com/OldStager01/attrition-advisor/pkg/models"
	"github.com/OldStager01/attrition-advisor/pkg/validation"
)

var ErrInference = errors.New("inference failed")

// positiveClass is the index of "will attrite" in the classifier output.
const positiveClass = 1

// Advisor turns an employee profile into a prediction result using the
// classifier it was constructed with.
type Advisor struct {
	classifier classifier.Classifier
}

func New(c classifier.Classifier) *Advisor {
	return &Advisor{classifier: c}
}

func (a *Advisor) ModelInfo() classifier.ModelInfo {
	return a.classifier.Info()
}

func (a *Advisor) Predict(ctx context.Context, profile models.EmployeeProfile) (*models.PredictionResult, error) {
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, err
	}

	start := time.Now()
	proba, err := a.classifier.PredictProba(profile.Features())
	duration := time.Since(start)
	if err != nil {
		reason := "classifier"
		if errors.Is(err, classifier.ErrSchemaMismatch) {
			reason = "schema_mismatch"
		}
		metrics.IncInferenceError(reason)
		logger.ErrorCtxf(ctx, "Inference failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}

	if len(proba) <= positiveClass {
		metrics.IncInferenceError("class_count")
		return nil, fmt.Errorf("%w: classifier returned %d class probabilities, need at least 2", ErrInference, len(proba))
	}

	p := proba[positiveClass]
	if math.IsNaN(p) || p < 0 || p > 1 {
		metrics.IncInferenceError("probability_range")
		return nil, fmt.Errorf("%w: probability %v outside [0, 1]", ErrInference, p)
	}

	tier := TierFor(p)
	result := models.NewPredictionResult(profile, p, tier, Recommendations(tier))
	result.ModelVersion = a.classifier.Info().Version

	metrics.ObservePrediction(string(tier), duration)
	logger.WithPrediction(ctx, result.ID, string(tier)).
		WithField("probability", fmt.Sprintf("%.2f", p)).
		Info("Prediction completed")

	return result, nil
}
