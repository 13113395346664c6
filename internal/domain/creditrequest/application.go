package creditrequest

import (
	"credit-engine/internal/domain/amortization"
	"credit-engine/internal/domain/scoring"
	"credit-engine/internal/pkg/apperrors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinApplicantAge = 18
	MaxApplicantAge = 70
)

var (
	passportPattern = regexp.MustCompile(`^\d{10}$`)
	phonePattern    = regexp.MustCompile(`^\+7\d{10}$`)
)

// Application is what a client submits. Payment figures are never taken from
// the client; they are recomputed from the terms.
type Application struct {
	Amount       float64
	TermMonths   int
	InterestRate float64

	FirstName            string
	LastName             string
	MiddleName           *string
	BirthDate            time.Time
	PassportNumber       string
	PassportIssuedBy     string
	PassportIssuedDate   time.Time
	PassportRegistration string

	EmploymentType       string
	EmployerName         *string
	JobTitle             *string
	WorkExperienceMonths *int
	MonthlyIncome        *float64

	Phone   string
	Address string

	HasInsurance       bool
	InsuranceProgramID *string
}

func (a Application) Terms() amortization.Terms {
	return amortization.Terms{Principal: a.Amount, AnnualRatePercent: a.InterestRate, TermMonths: a.TermMonths}
}

// Validate checks the application against product limits and field rules,
// returning the first violation as a field-level validation error.
func (a Application) Validate(limits amortization.Limits, now time.Time) error {
	if err := limits.Validate(a.Terms()); err != nil {
		return err
	}

	if err := minLength("firstName", a.FirstName, 2); err != nil {
		return err
	}
	if err := minLength("lastName", a.LastName, 2); err != nil {
		return err
	}
	if a.MiddleName != nil && strings.TrimSpace(*a.MiddleName) != "" {
		if err := minLength("middleName", *a.MiddleName, 2); err != nil {
			return err
		}
	}

	if a.BirthDate.IsZero() {
		return apperrors.NewValidationError("birthDate", "birth date is required")
	}
	if age := scoring.AgeAt(a.BirthDate, now); age < MinApplicantAge || age > MaxApplicantAge {
		return apperrors.NewValidationError("birthDate", "applicant must be between 18 and 70 years old")
	}

	if !passportPattern.MatchString(a.PassportNumber) {
		return apperrors.NewValidationError("passportNumber", "passport number must be 10 digits (series and number)")
	}
	if err := minLength("passportIssuedBy", a.PassportIssuedBy, 5); err != nil {
		return err
	}
	if a.PassportIssuedDate.IsZero() || a.PassportIssuedDate.After(now) {
		return apperrors.NewValidationError("passportIssuedDate", "passport issue date must be in the past")
	}
	if a.PassportIssuedDate.Before(a.BirthDate) {
		return apperrors.NewValidationError("passportIssuedDate", "passport issue date cannot precede birth date")
	}
	if err := minLength("passportRegistration", a.PassportRegistration, 5); err != nil {
		return err
	}

	if !scoring.ParseEmploymentType(a.EmploymentType).Valid() {
		return apperrors.NewValidationError("employmentType", "employment type must be one of "+employmentTypeList())
	}
	if a.WorkExperienceMonths != nil && *a.WorkExperienceMonths < 0 {
		return apperrors.NewValidationError("workExperience", "work experience cannot be negative")
	}
	if a.MonthlyIncome != nil && !(*a.MonthlyIncome >= 1) {
		return apperrors.NewValidationError("monthlyIncome", "monthly income must be at least 1")
	}

	if !phonePattern.MatchString(a.Phone) {
		return apperrors.NewValidationError("phone", "phone must be in +7XXXXXXXXXX format")
	}
	if err := minLength("address", a.Address, 5); err != nil {
		return err
	}

	return nil
}

// ScoringInputs treats missing income and experience as zero.
func (a Application) ScoringInputs(now time.Time) scoring.Inputs {
	in := scoring.Inputs{
		Age:             scoring.AgeAt(a.BirthDate, now),
		EmploymentType:  scoring.ParseEmploymentType(a.EmploymentType),
		RequestedAmount: a.Amount,
	}
	if a.MonthlyIncome != nil {
		in.MonthlyIncome = *a.MonthlyIncome
	}
	if a.WorkExperienceMonths != nil {
		in.WorkExperienceMonths = *a.WorkExperienceMonths
	}
	return in
}

func minLength(field, value string, n int) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		return apperrors.NewValidationError(field, field+" is too short")
	}
	return nil
}

func employmentTypeList() string {
	types := scoring.EmploymentTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
