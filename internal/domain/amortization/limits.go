package amortization

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"
)

// Limits are the product bounds enforced before the engine is invoked.
type Limits struct {
	MinAmount     float64
	MaxAmount     float64
	MinTermMonths int
	MaxTermMonths int
	MinRate       float64
	MaxRate       float64
}

var DefaultLimits = Limits{
	MinAmount:     10_000,
	MaxAmount:     5_000_000,
	MinTermMonths: 3,
	MaxTermMonths: 84,
	MinRate:       1,
	MaxRate:       30,
}

func (l Limits) Validate(t Terms) error {
	if t.Principal < l.MinAmount || t.Principal > l.MaxAmount {
		return apperrors.NewValidationError("amount",
			fmt.Sprintf("amount must be between %.0f and %.0f", l.MinAmount, l.MaxAmount))
	}
	if t.TermMonths < l.MinTermMonths || t.TermMonths > l.MaxTermMonths {
		return apperrors.NewValidationError("term",
			fmt.Sprintf("term must be between %d and %d months", l.MinTermMonths, l.MaxTermMonths))
	}
	if t.AnnualRatePercent < l.MinRate || t.AnnualRatePercent > l.MaxRate {
		return apperrors.NewValidationError("interestRate",
			fmt.Sprintf("interest rate must be between %g%% and %g%%", l.MinRate, l.MaxRate))
	}
	return t.check()
}
