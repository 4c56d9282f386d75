package classifier

import (
	"fmt"
	"math"

	"github.com/OldStager01/attrition-advisor/pkg/models"
)

type logisticParams struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Means        []float64 `json:"means,omitempty"`
	Scales       []float64 `json:"scales,omitempty"`
}

// logisticModel is a binary logistic regression with optional standard
// scaling of the inputs.
type logisticModel struct {
	info   ModelInfo
	params logisticParams
}

func newLogisticModel(info ModelInfo, params *logisticParams) (*logisticModel, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: logistic parameters missing", ErrInvalidArtifact)
	}
	if len(info.Classes) != 2 {
		return nil, fmt.Errorf("%w: logistic regression needs exactly 2 classes, got %d", ErrInvalidArtifact, len(info.Classes))
	}

	n := len(info.Features)
	if len(params.Coefficients) != n {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidArtifact, len(params.Coefficients), n)
	}
	if params.Means != nil && len(params.Means) != n {
		return nil, fmt.Errorf("%w: %d means for %d features", ErrInvalidArtifact, len(params.Means), n)
	}
	if params.Scales != nil {
		if len(params.Scales) != n {
			return nil, fmt.Errorf("%w: %d scales for %d features", ErrInvalidArtifact, len(params.Scales), n)
		}
		for i, s := range params.Scales {
			if s == 0 {
				return nil, fmt.Errorf("%w: scale for %s is zero", ErrInvalidArtifact, info.Features[i])
			}
		}
	}

	return &logisticModel{info: info, params: *params}, nil
}

func (m *logisticModel) Info() ModelInfo {
	return m.info
}

func (m *logisticModel) PredictProba(record models.FeatureRecord) ([]float64, error) {
	if err := m.info.checkSchema(record); err != nil {
		return nil, err
	}

	z := m.params.Intercept
	for i, x := range record.Values {
		if m.params.Means != nil {
			x -= m.params.Means[i]
		}
		if m.params.Scales != nil {
			x /= m.params.Scales[i]
		}
		z += m.params.Coefficients[i] * x
	}

	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
