package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/OldStager01/attrition-advisor/internal/advisor"
	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/OldStager01/attrition-advisor/internal/report"
	"github.com/OldStager01/attrition-advisor/pkg/models"
	"github.com/OldStager01/attrition-advisor/pkg/validation"
	"github.com/gin-gonic/gin"
)

// AdvisorHandler serves the interactive form backed by the session state
// machine.
type AdvisorHandler struct {
	session        *advisor.Session
	model          classifier.ModelInfo
	reportFilename string
}

func NewAdvisorHandler(session *advisor.Session, model classifier.ModelInfo, reportFilename string) *AdvisorHandler {
	return &AdvisorHandler{
		session:        session,
		model:          model,
		reportFilename: reportFilename,
	}
}

// profileForm mirrors the form controls. Absent fields keep the session's
// current value; present ones are clamped by the session.
type profileForm struct {
	Age             *int    `form:"age"`
	MonthlyIncome   *int    `form:"monthly_income"`
	OverTime        *string `form:"overtime"`
	JobSatisfaction *int    `form:"job_satisfaction"`
	WorkLifeBalance *int    `form:"work_life_balance"`
	YearsAtCompany  *int    `form:"years_at_company"`
}

func (f profileForm) apply(p models.EmployeeProfile) models.EmployeeProfile {
	if f.Age != nil {
		p.Age = *f.Age
	}
	if f.MonthlyIncome != nil {
		p.MonthlyIncome = *f.MonthlyIncome
	}
	if f.OverTime != nil {
		p.OverTime = models.ParseOverTime(validation.SanitizeString(*f.OverTime))
	}
	if f.JobSatisfaction != nil {
		p.JobSatisfaction = *f.JobSatisfaction
	}
	if f.WorkLifeBalance != nil {
		p.WorkLifeBalance = *f.WorkLifeBalance
	}
	if f.YearsAtCompany != nil {
		p.YearsAtCompany = *f.YearsAtCompany
	}
	return p
}

type bounds struct {
	MinAge, MaxAge                         int
	MinMonthlyIncome, MaxMonthlyIncome     int
	MinSatisfaction, MaxSatisfaction       int
	MinWorkLifeBalance, MaxWorkLifeBalance int
	MinYearsAtCompany, MaxYearsAtCompany   int
}

var formBounds = bounds{
	MinAge: models.MinAge, MaxAge: models.MaxAge,
	MinMonthlyIncome: models.MinMonthlyIncome, MaxMonthlyIncome: models.MaxMonthlyIncome,
	MinSatisfaction: models.MinSatisfaction, MaxSatisfaction: models.MaxSatisfaction,
	MinWorkLifeBalance: models.MinWorkLifeBalance, MaxWorkLifeBalance: models.MaxWorkLifeBalance,
	MinYearsAtCompany: models.MinYearsAtCompany, MaxYearsAtCompany: models.MaxYearsAtCompany,
}

type pageView struct {
	advisor.Snapshot
	Probability string
	IdlePrompt  string
	Error       string
	Bounds      bounds
	Model       classifier.ModelInfo
}

func (h *AdvisorHandler) render(c *gin.Context, status int, snap advisor.Snapshot, errMsg string) {
	view := pageView{
		Snapshot:   snap,
		Error:      errMsg,
		IdlePrompt: advisor.IdlePrompt,
		Bounds:     formBounds,
		Model:      h.model,
	}
	if snap.Result != nil {
		view.Probability = report.FormatProbability(snap.Result.Probability)
	}
	c.HTML(status, "index.html", view)
}

func (h *AdvisorHandler) bindForm(c *gin.Context) (models.EmployeeProfile, bool) {
	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, h.session.Snapshot(), "Invalid form input: "+err.Error())
		return models.EmployeeProfile{}, false
	}
	return form.apply(h.session.Snapshot().Profile), true
}

// Index renders the form and whatever the session currently shows.
func (h *AdvisorHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, h.session.Snapshot(), "")
}

// UpdateProfile applies control changes without predicting.
func (h *AdvisorHandler) UpdateProfile(c *gin.Context) {
	profile, ok := h.bindForm(c)
	if !ok {
		return
	}
	h.session.UpdateProfile(c.Request.Context(), profile)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AdvisorHandler) Predict(c *gin.Context) {
	profile, ok := h.bindForm(c)
	if !ok {
		return
	}

	snap, err := h.session.SubmitAndPredict(c.Request.Context(), profile)
	if err != nil {
		_ = c.Error(err)
		status := http.StatusInternalServerError
		if errors.Is(err, advisor.ErrInference) || errors.Is(err, validation.ErrInvalidInput) {
			status = http.StatusUnprocessableEntity
		}
		h.render(c, status, snap, "Prediction failed: "+err.Error())
		return
	}

	h.render(c, http.StatusOK, snap, "")
}

// GenerateReport exports the displayed prediction and sends it as a download.
func (h *AdvisorHandler) GenerateReport(c *gin.Context) {
	data, err := h.session.GenerateReport(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		status := http.StatusInternalServerError
		msg := "Report generation failed: " + err.Error()
		if errors.Is(err, advisor.ErrNoPrediction) {
			status = http.StatusConflict
			msg = "Run a prediction before generating a report."
		}
		h.render(c, status, h.session.Snapshot(), msg)
		return
	}

	h.sendPDF(c, data)
}

// DownloadReport re-sends the last generated report.
func (h *AdvisorHandler) DownloadReport(c *gin.Context) {
	data, ok := h.session.Report()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report has been generated for the current prediction"})
		return
	}
	h.sendPDF(c, data)
}

func (h *AdvisorHandler) sendPDF(c *gin.Context, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+h.reportFilename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "application/pdf", data)
}
