package classifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OldStager01/attrition-advisor/pkg/models"
)

var (
	ErrArtifactNotFound = errors.New("classifier artifact not found")
	ErrInvalidArtifact  = errors.New("invalid classifier artifact")
	ErrSchemaMismatch   = errors.New("feature schema mismatch")
)

// Kind identifies the estimator stored in an artifact.
type Kind string

const (
	KindLogisticRegression Kind = "logistic_regression"
	KindTreeEnsemble       Kind = "tree_ensemble"
)

// Classifier estimates per-class probabilities for a single feature record.
// Index 1 of the returned slice is the positive (attrition) class.
type Classifier interface {
	PredictProba(record models.FeatureRecord) ([]float64, error)
	Info() ModelInfo
}

type ModelInfo struct {
	Name     string   `json:"name" example:"attrition-logreg"`
	Version  string   `json:"version" example:"1.0.0"`
	Kind     Kind     `json:"kind" example:"logistic_regression"`
	Features []string `json:"features"`
	Classes  []string `json:"classes"`
	Source   string   `json:"source,omitempty" example:"models/attrition_model.json"`
}

// checkSchema rejects records whose names or order differ from what the
// artifact was trained on.
func (i ModelInfo) checkSchema(record models.FeatureRecord) error {
	if len(record.Names) != len(record.Values) {
		return fmt.Errorf("%w: record has %d names and %d values", ErrSchemaMismatch, len(record.Names), len(record.Values))
	}
	if len(record.Names) != len(i.Features) {
		return fmt.Errorf("%w: model expects %d features [%s], got %d [%s]",
			ErrSchemaMismatch, len(i.Features), strings.Join(i.Features, ", "),
			len(record.Names), strings.Join(record.Names, ", "))
	}
	for idx, name := range i.Features {
		if record.Names[idx] != name {
			return fmt.Errorf("%w: feature %d is %q, model expects %q", ErrSchemaMismatch, idx, record.Names[idx], name)
		}
	}
	return nil
}
