package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/OldStager01/attrition-advisor/internal/advisor"
	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/OldStager01/attrition-advisor/internal/metrics"
	"github.com/OldStager01/attrition-advisor/internal/report"
	"github.com/OldStager01/attrition-advisor/pkg/models"
	"github.com/OldStager01/attrition-advisor/pkg/validation"
	"github.com/gin-gonic/gin"
)

// Predictor is the inference side of the advisor.
type Predictor interface {
	Predict(ctx context.Context, profile models.EmployeeProfile) (*models.PredictionResult, error)
	ModelInfo() classifier.ModelInfo
}

// PredictionHandler is the stateless JSON API; it never touches the form
// session.
type PredictionHandler struct {
	predictor      Predictor
	exporter       advisor.Exporter
	reportFilename string
}

func NewPredictionHandler(predictor Predictor, exporter advisor.Exporter, reportFilename string) *PredictionHandler {
	return &PredictionHandler{
		predictor:      predictor,
		exporter:       exporter,
		reportFilename: reportFilename,
	}
}

// ProfileRequest is the JSON body of the API routes. Pointers tell an
// omitted field apart from a legitimate zero.
type ProfileRequest struct {
	Age             *int    `json:"age" binding:"required,min=18,max=60" example:"30"`
	MonthlyIncome   *int    `json:"monthly_income" binding:"required,min=1000,max=20000" example:"5000"`
	OverTime        *string `json:"overtime" binding:"required,oneof=Yes No" example:"No"`
	JobSatisfaction *int    `json:"job_satisfaction" binding:"required,min=1,max=4" example:"3"`
	WorkLifeBalance *int    `json:"work_life_balance" binding:"required,min=1,max=4" example:"3"`
	YearsAtCompany  *int    `json:"years_at_company" binding:"required,min=0,max=40" example:"5"`
}

// Profile converts a bound request; only call it after binding succeeded.
func (r ProfileRequest) Profile() models.EmployeeProfile {
	return models.EmployeeProfile{
		Age:             *r.Age,
		MonthlyIncome:   *r.MonthlyIncome,
		OverTime:        models.OverTime(*r.OverTime),
		JobSatisfaction: *r.JobSatisfaction,
		WorkLifeBalance: *r.WorkLifeBalance,
		YearsAtCompany:  *r.YearsAtCompany,
	}
}

type PredictionResponse struct {
	ID              string                 `json:"id" example:"4f9f7a2e-9d0b-4d3e-8a4c-1b7f3c2d9e10"`
	Profile         models.EmployeeProfile `json:"profile"`
	Probability     float64                `json:"probability" example:"0.41"`
	ProbabilityText string                 `json:"probability_text" example:"0.41"`
	RiskTier        models.RiskTier        `json:"risk_tier" example:"Medium"`
	Headline        string                 `json:"headline" example:"Medium Risk: Moderate likelihood of leaving. Recommended Actions:"`
	Recommendations []string               `json:"recommendations"`
	Indicator       int                    `json:"indicator" example:"41"`
	ModelVersion    string                 `json:"model_version,omitempty" example:"1.0.0"`
}

func toPredictionResponse(r *models.PredictionResult) PredictionResponse {
	return PredictionResponse{
		ID:              r.ID,
		Profile:         r.Profile,
		Probability:     r.Probability,
		ProbabilityText: report.FormatProbability(r.Probability),
		RiskTier:        r.RiskTier,
		Headline:        advisor.Headline(r.RiskTier),
		Recommendations: r.Recommendations,
		Indicator:       r.Indicator,
		ModelVersion:    r.ModelVersion,
	}
}

func (h *PredictionHandler) predict(c *gin.Context) (*models.PredictionResult, bool) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return nil, false
	}

	result, err := h.predictor.Predict(c.Request.Context(), req.Profile())
	if err != nil {
		_ = c.Error(err)
		var perr *validation.ProfileError
		switch {
		case errors.As(err, &perr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee profile", "fields": perr.Fields})
		case errors.Is(err, advisor.ErrInference):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		}
		return nil, false
	}
	return result, true
}

// Predict godoc
// @Summary Predict attrition risk
// @Description Score one employee profile and return the risk tier with recommendations
// @Tags Predictions
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Employee profile"
// @Success 200 {object} PredictionResponse
// @Failure 400 {object} map[string]interface{} "Invalid profile"
// @Failure 422 {object} map[string]string "Inference error"
// @Router /api/v1/predict [post]
func (h *PredictionHandler) Predict(c *gin.Context) {
	result, ok := h.predict(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toPredictionResponse(result))
}

// Report godoc
// @Summary Predict and export a PDF summary
// @Description Score one employee profile and return the single-page PDF report
// @Tags Predictions
// @Accept json
// @Produce application/pdf
// @Param profile body ProfileRequest true "Employee profile"
// @Success 200 {file} file "PDF report"
// @Failure 400 {object} map[string]interface{} "Invalid profile"
// @Failure 422 {object} map[string]string "Inference error"
// @Failure 500 {object} map[string]string "Export error"
// @Router /api/v1/report [post]
func (h *PredictionHandler) Report(c *gin.Context) {
	result, ok := h.predict(c)
	if !ok {
		return
	}

	data, err := h.exporter.Export(result)
	if err != nil {
		_ = c.Error(err)
		metrics.IncReport("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed: " + err.Error()})
		return
	}
	metrics.IncReport("success")

	c.Header("Content-Disposition", `attachment; filename="`+h.reportFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Model godoc
// @Summary Loaded classifier
// @Description Describe the classifier artifact loaded at startup
// @Tags Model
// @Produce json
// @Success 200 {object} classifier.ModelInfo
// @Router /api/v1/model [get]
func (h *PredictionHandler) Model(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictor.ModelInfo())
}
