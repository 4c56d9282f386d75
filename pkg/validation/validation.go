package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/OldStager01/attrition-advisor/pkg/models"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes a single out-of-range profile field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ProfileError aggregates every field that failed validation.
type ProfileError struct {
	Fields []FieldError
}

func (e *ProfileError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid employee profile: " + strings.Join(parts, "; ")
}

func (e *ProfileError) Unwrap() error {
	return ErrInvalidInput
}

// SanitizeString removes control characters and trims whitespace
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateProfile checks that every field of the profile is present and
// within the bounds the form controls enforce.
func ValidateProfile(p models.EmployeeProfile) error {
	var fields []FieldError

	checkRange := func(field string, v, lo, hi int) {
		if v < lo || v > hi {
			fields = append(fields, FieldError{
				Field:   field,
				Message: fmt.Sprintf("must be between %d and %d, got %d", lo, hi, v),
			})
		}
	}

	checkRange("age", p.Age, models.MinAge, models.MaxAge)
	checkRange("monthly_income", p.MonthlyIncome, models.MinMonthlyIncome, models.MaxMonthlyIncome)
	checkRange("job_satisfaction", p.JobSatisfaction, models.MinSatisfaction, models.MaxSatisfaction)
	checkRange("work_life_balance", p.WorkLifeBalance, models.MinWorkLifeBalance, models.MaxWorkLifeBalance)
	checkRange("years_at_company", p.YearsAtCompany, models.MinYearsAtCompany, models.MaxYearsAtCompany)

	if p.OverTime != models.OverTimeYes && p.OverTime != models.OverTimeNo {
		fields = append(fields, FieldError{
			Field:   "overtime",
			Message: fmt.Sprintf("must be Yes or No, got %q", p.OverTime),
		})
	}

	if len(fields) > 0 {
		return &ProfileError{Fields: fields}
	}
	return nil
}
