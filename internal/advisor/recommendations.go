package advisor

import "github.com/OldStager01/attrition-advisor/pkg/models"

var recommendations = map[models.RiskTier][]string{
	models.RiskHigh: {
		"Reduce overtime and improve work-life balance.",
		"Offer recognition or financial incentives.",
		"Provide career growth opportunities.",
	},
	models.RiskMedium: {
		"Schedule periodic engagement meetings.",
		"Monitor job satisfaction closely.",
		"Review compensation if below market average.",
	},
	models.RiskLow: {
		"Maintain positive workplace environment.",
		"Continue performance recognition programs.",
	},
}

var headlines = map[models.RiskTier]string{
	models.RiskHigh:   "High Risk: Employee likely to leave. Recommended Actions:",
	models.RiskMedium: "Medium Risk: Moderate likelihood of leaving. Recommended Actions:",
	models.RiskLow:    "Low Risk: Employee stable. Recommended Actions:",
}

// IdlePrompt is shown until a prediction has been triggered.
const IdlePrompt = "Please fill in employee details and click 'Predict Attrition Risk'."

// Recommendations returns a fresh copy of the fixed guidance for a tier.
func Recommendations(tier models.RiskTier) []string {
	recs := recommendations[tier]
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

// Headline returns the banner text shown above the recommendations.
func Headline(tier models.RiskTier) string {
	return headlines[tier]
}
