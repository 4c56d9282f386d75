package advisor

import "github.com/OldStager01/attrition-advisor/pkg/models"

// Tier thresholds. Both comparisons are strict, so 0.65 is Medium and 0.4
// is Low.
const (
	HighThreshold   = 0.65
	MediumThreshold = 0.4
)

// TierFor maps an attrition probability onto its risk tier.
func TierFor(probability float64) models.RiskTier {
	switch {
	case probability > HighThreshold:
		return models.RiskHigh
	case probability > MediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
