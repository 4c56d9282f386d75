package models

import "strings"

type OverTime string

const (
	OverTimeYes OverTime = "Yes"
	OverTimeNo  OverTime = "No"
)

// Control bounds for the employee profile form.
const (
	MinAge             = 18
	MaxAge             = 60
	MinMonthlyIncome   = 1000
	MaxMonthlyIncome   = 20000
	MinSatisfaction    = 1
	MaxSatisfaction    = 4
	MinWorkLifeBalance = 1
	MaxWorkLifeBalance = 4
	MinYearsAtCompany  = 0
	MaxYearsAtCompany  = 40
)

// Feature names in the order the classifier expects them.
const (
	FeatureAge             = "Age"
	FeatureMonthlyIncome   = "MonthlyIncome"
	FeatureOverTime        = "OverTime"
	FeatureJobSatisfaction = "JobSatisfaction"
	FeatureWorkLifeBalance = "WorkLifeBalance"
	FeatureYearsAtCompany  = "YearsAtCompany"
)

var featureNames = []string{
	FeatureAge,
	FeatureMonthlyIncome,
	FeatureOverTime,
	FeatureJobSatisfaction,
	FeatureWorkLifeBalance,
	FeatureYearsAtCompany,
}

// FeatureNames returns the fixed feature schema.
func FeatureNames() []string {
	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return names
}

// ParseOverTime maps a form value onto Yes/No. Anything that is not "yes"
// (case-insensitive) is treated as No.
func ParseOverTime(s string) OverTime {
	if strings.EqualFold(strings.TrimSpace(s), string(OverTimeYes)) {
		return OverTimeYes
	}
	return OverTimeNo
}

// EmployeeProfile is the input to a single attrition prediction.
type EmployeeProfile struct {
	Age             int      `json:"age" example:"30"`
	MonthlyIncome   int      `json:"monthly_income" example:"5000"`
	OverTime        OverTime `json:"overtime" example:"No"`
	JobSatisfaction int      `json:"job_satisfaction" example:"3"`
	WorkLifeBalance int      `json:"work_life_balance" example:"3"`
	YearsAtCompany  int      `json:"years_at_company" example:"5"`
}

func DefaultProfile() EmployeeProfile {
	return EmployeeProfile{
		Age:             30,
		MonthlyIncome:   5000,
		OverTime:        OverTimeNo,
		JobSatisfaction: 3,
		WorkLifeBalance: 3,
		YearsAtCompany:  5,
	}
}

// Clamp returns a copy with every field forced into its control range.
func (p EmployeeProfile) Clamp() EmployeeProfile {
	return EmployeeProfile{
		Age:             clamp(p.Age, MinAge, MaxAge),
		MonthlyIncome:   clamp(p.MonthlyIncome, MinMonthlyIncome, MaxMonthlyIncome),
		OverTime:        ParseOverTime(string(p.OverTime)),
		JobSatisfaction: clamp(p.JobSatisfaction, MinSatisfaction, MaxSatisfaction),
		WorkLifeBalance: clamp(p.WorkLifeBalance, MinWorkLifeBalance, MaxWorkLifeBalance),
		YearsAtCompany:  clamp(p.YearsAtCompany, MinYearsAtCompany, MaxYearsAtCompany),
	}
}

func (p EmployeeProfile) WorksOverTime() bool {
	return p.OverTime == OverTimeYes
}

// Features builds the single-row record submitted to the classifier.
func (p EmployeeProfile) Features() FeatureRecord {
	overtime := 0.0
	if p.WorksOverTime() {
		overtime = 1
	}

	return FeatureRecord{
		Names: FeatureNames(),
		Values: []float64{
			float64(p.Age),
			float64(p.MonthlyIncome),
			overtime,
			float64(p.JobSatisfaction),
			float64(p.WorkLifeBalance),
			float64(p.YearsAtCompany),
		},
	}
}

// FeatureRecord is a named, ordered numeric vector.
type FeatureRecord struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

func (r FeatureRecord) Len() int {
	return len(r.Values)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
