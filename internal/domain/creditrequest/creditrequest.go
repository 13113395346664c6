package creditrequest

import (
	"credit-engine/internal/domain/scoring"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"strings"
	"time"
)

const DefaultAcceptanceThreshold = 60

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusIssued   Status = "ISSUED"
	StatusCanceled Status = "CANCELED"
)

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusIssued, StatusCanceled:
		return status, nil
	}
	return "", apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", s))
}

// CheckTransition rejects moving an issued request anywhere else.
func CheckTransition(from, to Status) error {
	if from == StatusIssued && to != StatusIssued {
		return fmt.Errorf("%w: request is %s", apperrors.ErrStatusLocked, from)
	}
	return nil
}

type CreditRequest struct {
	ID     int64
	UserID string
	Status Status

	Amount         float64
	TermMonths     int
	InterestRate   float64
	MonthlyPayment int64
	TotalPayment   int64

	FirstName            string
	LastName             string
	MiddleName           *string
	BirthDate            time.Time
	PassportNumber       string
	PassportIssuedBy     string
	PassportIssuedDate   time.Time
	PassportRegistration string

	EmploymentType       scoring.EmploymentType
	EmployerName         *string
	JobTitle             *string
	WorkExperienceMonths *int
	MonthlyIncome        *float64

	Phone   string
	Address string

	HasInsurance       bool
	InsuranceProgramID *string

	ScoringResult int
	ScoringPassed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Statistics struct {
	TotalRequests    int64
	ApprovedRequests int64
	RejectedRequests int64
	UpdatedAt        time.Time
}

func (s Statistics) Equal(other Statistics) bool {
	return s.TotalRequests == other.TotalRequests &&
		s.ApprovedRequests == other.ApprovedRequests &&
		s.RejectedRequests == other.RejectedRequests
}

type StatisticsDelta struct {
	Approved int64
	Rejected int64
}

func (d StatisticsDelta) IsZero() bool {
	return d.Approved == 0 && d.Rejected == 0
}

// DeltaForTransition keeps the approved and rejected counters equal to the
// number of requests currently holding that status.
func DeltaForTransition(from, to Status) StatisticsDelta {
	var d StatisticsDelta
	if from == to {
		return d
	}
	switch from {
	case StatusApproved:
		d.Approved--
	case StatusRejected:
		d.Rejected--
	}
	switch to {
	case StatusApproved:
		d.Approved++
	case StatusRejected:
		d.Rejected++
	}
	return d
}

type Filter struct {
	Status *Status
	Limit  int
	Offset int
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func (f Filter) normalized() Filter {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	f.Limit = min(f.Limit, maxListLimit)
	f.Offset = max(f.Offset, 0)
	return f
}
