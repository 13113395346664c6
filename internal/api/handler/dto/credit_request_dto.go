package dto

import (
	"credit-engine/internal/domain/creditrequest"
	"strconv"
	"time"
)

type CreateCreditRequestRequest struct {
	Amount       float64 `json:"amount"`
	Term         int     `json:"term"`
	InterestRate float64 `json:"interestRate"`

	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	MiddleName           *string `json:"middleName,omitempty"`
	BirthDate            string  `json:"birthDate"`
	PassportNumber       string  `json:"passportNumber"`
	PassportIssuedBy     string  `json:"passportIssuedBy"`
	PassportIssuedDate   string  `json:"passportIssuedDate"`
	PassportRegistration string  `json:"passportRegistration"`

	EmploymentType string   `json:"employmentType" enums:"EMPLOYED,SELF_EMPLOYED,BUSINESS_OWNER,RETIRED,STUDENT,UNEMPLOYED"`
	EmployerName   *string  `json:"employerName,omitempty"`
	JobTitle       *string  `json:"jobTitle,omitempty"`
	WorkExperience *int     `json:"workExperience,omitempty"`
	MonthlyIncome  *float64 `json:"monthlyIncome,omitempty"`

	Phone   string `json:"phone"`
	Address string `json:"address"`

	HasInsurance       bool    `json:"hasInsurance"`
	InsuranceProgramID *string `json:"insuranceProgramId,omitempty"`
}

// Application converts the payload; only date parsing can fail here, the
// remaining rules are enforced by the credit request service.
func (r *CreateCreditRequestRequest) Application() (creditrequest.Application, error) {
	birthDate, err := parseDate("birthDate", r.BirthDate)
	if err != nil {
		return creditrequest.Application{}, err
	}
	issuedDate, err := parseDate("passportIssuedDate", r.PassportIssuedDate)
	if err != nil {
		return creditrequest.Application{}, err
	}

	return creditrequest.Application{
		Amount:               r.Amount,
		TermMonths:           r.Term,
		InterestRate:         r.InterestRate,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		MiddleName:           r.MiddleName,
		BirthDate:            birthDate,
		PassportNumber:       r.PassportNumber,
		PassportIssuedBy:     r.PassportIssuedBy,
		PassportIssuedDate:   issuedDate,
		PassportRegistration: r.PassportRegistration,
		EmploymentType:       r.EmploymentType,
		EmployerName:         r.EmployerName,
		JobTitle:             r.JobTitle,
		WorkExperienceMonths: r.WorkExperience,
		MonthlyIncome:        r.MonthlyIncome,
		Phone:                r.Phone,
		Address:              r.Address,
		HasInsurance:         r.HasInsurance,
		InsuranceProgramID:   r.InsuranceProgramID,
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() (creditrequest.Status, error) {
	return creditrequest.ParseStatus(r.Status)
}

type CreditRequestResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	Status         string `json:"status"`
	Amount         string `json:"amount"`
	Term           int    `json:"term"`
	InterestRate   string `json:"interestRate"`
	MonthlyPayment string `json:"monthlyPayment"`
	TotalPayment   string `json:"totalPayment"`

	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	MiddleName           *string `json:"middleName,omitempty"`
	BirthDate            string  `json:"birthDate"`
	PassportNumber       string  `json:"passportNumber"`
	PassportIssuedBy     string  `json:"passportIssuedBy"`
	PassportIssuedDate   string  `json:"passportIssuedDate"`
	PassportRegistration string  `json:"passportRegistration"`

	EmploymentType string   `json:"employmentType"`
	EmployerName   *string  `json:"employerName,omitempty"`
	JobTitle       *string  `json:"jobTitle,omitempty"`
	WorkExperience *int     `json:"workExperience,omitempty"`
	MonthlyIncome  *float64 `json:"monthlyIncome,omitempty"`

	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	HasInsurance       bool    `json:"hasInsurance"`
	InsuranceProgramID *string `json:"insuranceProgramId,omitempty"`

	ScoringResult int       `json:"scoringResult"`
	ScoringPassed bool      `json:"scoringPassed"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewCreditRequestResponse(req *creditrequest.CreditRequest) CreditRequestResponse {
	return CreditRequestResponse{
		ID:                   strconv.FormatInt(req.ID, 10),
		UserID:               req.UserID,
		Status:               string(req.Status),
		Amount:               amount(req.Amount),
		Term:                 req.TermMonths,
		InterestRate:         rate(req.InterestRate),
		MonthlyPayment:       wholeUnits(req.MonthlyPayment),
		TotalPayment:         wholeUnits(req.TotalPayment),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		MiddleName:           req.MiddleName,
		BirthDate:            req.BirthDate.Format(time.DateOnly),
		PassportNumber:       req.PassportNumber,
		PassportIssuedBy:     req.PassportIssuedBy,
		PassportIssuedDate:   req.PassportIssuedDate.Format(time.DateOnly),
		PassportRegistration: req.PassportRegistration,
		EmploymentType:       string(req.EmploymentType),
		EmployerName:         req.EmployerName,
		JobTitle:             req.JobTitle,
		WorkExperience:       req.WorkExperienceMonths,
		MonthlyIncome:        req.MonthlyIncome,
		Phone:                req.Phone,
		Address:              req.Address,
		HasInsurance:         req.HasInsurance,
		InsuranceProgramID:   req.InsuranceProgramID,
		ScoringResult:        req.ScoringResult,
		ScoringPassed:        req.ScoringPassed,
		CreatedAt:            req.CreatedAt,
		UpdatedAt:            req.UpdatedAt,
	}
}

func NewCreditRequestResponses(reqs []creditrequest.CreditRequest) []CreditRequestResponse {
	resp := make([]CreditRequestResponse, len(reqs))
	for i := range reqs {
		resp[i] = NewCreditRequestResponse(&reqs[i])
	}
	return resp
}

type StatisticsResponse struct {
	TotalRequests    int64     `json:"totalRequests"`
	ApprovedRequests int64     `json:"approvedRequests"`
	RejectedRequests int64     `json:"rejectedRequests"`
	OtherRequests    int64     `json:"otherRequests"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func NewStatisticsResponse(s *creditrequest.Statistics) StatisticsResponse {
	return StatisticsResponse{
		TotalRequests:    s.TotalRequests,
		ApprovedRequests: s.ApprovedRequests,
		RejectedRequests: s.RejectedRequests,
		OtherRequests:    max(0, s.TotalRequests-s.ApprovedRequests-s.RejectedRequests),
		UpdatedAt:        s.UpdatedAt,
	}
}
