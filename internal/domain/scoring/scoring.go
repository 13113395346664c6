// Package scoring computes a bounded, rule-based creditworthiness score.
//
// The score is additive over five independent factors and always lands in
// [0, 100]. The acceptance cutoff is policy and lives with the caller.
package scoring

import (
	"math"
	"strings"
)

const (
	MinScore = 0
	MaxScore = 100
)

type EmploymentType string

const (
	EmploymentEmployed      EmploymentType = "EMPLOYED"
	EmploymentSelfEmployed  EmploymentType = "SELF_EMPLOYED"
	EmploymentBusinessOwner EmploymentType = "BUSINESS_OWNER"
	EmploymentRetired       EmploymentType = "RETIRED"
	EmploymentStudent       EmploymentType = "STUDENT"
	EmploymentUnemployed    EmploymentType = "UNEMPLOYED"
	EmploymentUnknown       EmploymentType = "UNKNOWN"
)

var employmentPoints = map[EmploymentType]int{
	EmploymentEmployed:      20,
	EmploymentBusinessOwner: 18,
	EmploymentSelfEmployed:  15,
	EmploymentRetired:       10,
	EmploymentStudent:       5,
	EmploymentUnemployed:    0,
}

func EmploymentTypes() []EmploymentType {
	return []EmploymentType{
		EmploymentEmployed, EmploymentSelfEmployed, EmploymentBusinessOwner,
		EmploymentRetired, EmploymentStudent, EmploymentUnemployed,
	}
}

// ParseEmploymentType accepts any casing and '-' or ' ' as separators.
// Unrecognized values map to EmploymentUnknown.
func ParseEmploymentType(s string) EmploymentType {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	t := EmploymentType(normalized)
	if _, ok := employmentPoints[t]; ok {
		return t
	}
	return EmploymentUnknown
}

func (t EmploymentType) Valid() bool {
	_, ok := employmentPoints[t]
	return ok
}

type Inputs struct {
	Age                  int
	MonthlyIncome        float64
	EmploymentType       EmploymentType
	WorkExperienceMonths int
	RequestedAmount      float64
}

func (in Inputs) Score() int {
	return ComputeScore(in.Age, in.MonthlyIncome, in.EmploymentType, in.WorkExperienceMonths, in.RequestedAmount)
}

// ComputeScore has no error path: unknown employment types and zero income
// fall through to zero-point branches.
func ComputeScore(age int, monthlyIncome float64, employmentType EmploymentType, workExperienceMonths int, requestedAmount float64) int {
	score := agePoints(age) +
		employmentPoints[employmentType] +
		experiencePoints(workExperienceMonths) +
		ratioPoints(incomeToLoanRatio(requestedAmount, monthlyIncome)) +
		incomePoints(monthlyIncome)

	return max(MinScore, min(MaxScore, score))
}

func agePoints(age int) int {
	switch {
	case age < 21:
		return 5
	case age <= 25:
		return 10
	case age <= 45:
		return 20
	case age <= 60:
		return 15
	default:
		return 5
	}
}

func experiencePoints(months int) int {
	switch {
	case months < 6:
		return 5
	case months < 12:
		return 10
	case months < 36:
		return 13
	default:
		return 15
	}
}

// incomeToLoanRatio is the number of monthly incomes the loan represents.
func incomeToLoanRatio(requestedAmount, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 || math.IsNaN(monthlyIncome) {
		return math.Inf(1)
	}
	return requestedAmount / monthlyIncome
}

func ratioPoints(ratio float64) int {
	switch {
	case ratio <= 6:
		return 30
	case ratio <= 12:
		return 25
	case ratio <= 18:
		return 20
	case ratio <= 24:
		return 15
	case ratio <= 36:
		return 10
	case ratio <= 48:
		return 5
	default:
		return 0
	}
}

func incomePoints(monthlyIncome float64) int {
	switch {
	case !(monthlyIncome > 0):
		return 0
	case monthlyIncome >= 150_000:
		return 15
	case monthlyIncome >= 100_000:
		return 12
	case monthlyIncome >= 70_000:
		return 10
	case monthlyIncome >= 40_000:
		return 8
	case monthlyIncome >= 25_000:
		return 5
	default:
		return 3
	}
}
