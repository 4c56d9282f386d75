package report

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/OldStager01/attrition-advisor/pkg/models"
)

var ErrEmptyResult = errors.New("report requires a prediction result")

const DefaultTitle = "Attrition Prediction Summary"

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is the printable summary of one prediction. Every value is taken
// from the result as displayed; nothing is recomputed.
type Report struct {
	Title           string    `json:"title"`
	PredictionID    string    `json:"prediction_id"`
	Fields          []Field   `json:"fields"`
	RiskTier        string    `json:"risk_tier"`
	Probability     string    `json:"probability"`
	Recommendations []string  `json:"recommendations"`
	Footer          string    `json:"footer,omitempty"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type Options struct {
	Title  string
	Footer string
}

func Build(result *models.PredictionResult, opts Options) (*Report, error) {
	if result == nil {
		return nil, ErrEmptyResult
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	p := result.Profile
	return &Report{
		Title:        title,
		PredictionID: result.ID,
		Fields: []Field{
			{Label: "Age", Value: strconv.Itoa(p.Age)},
			{Label: "Monthly Income", Value: "$" + strconv.Itoa(p.MonthlyIncome)},
			{Label: "OverTime", Value: string(p.OverTime)},
			{Label: "Job Satisfaction", Value: strconv.Itoa(p.JobSatisfaction)},
			{Label: "Work-Life Balance", Value: strconv.Itoa(p.WorkLifeBalance)},
			{Label: "Years at Company", Value: strconv.Itoa(p.YearsAtCompany)},
		},
		RiskTier:        string(result.RiskTier),
		Probability:     FormatProbability(result.Probability),
		Recommendations: append([]string(nil), result.Recommendations...),
		Footer:          opts.Footer,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// FormatProbability renders a probability with two decimals.
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.2f", p)
}
