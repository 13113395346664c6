package amortization

const (
	ColorPrincipal = "#0066CC"
	ColorInterest  = "#FF6B6B"
)

type ChartPoint struct {
	Month     int   `json:"month"`
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
}

type BreakdownSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"fill"`
}

func ChartSeries(schedule []PaymentEntry) []ChartPoint {
	points := make([]ChartPoint, len(schedule))
	for i, entry := range schedule {
		points[i] = ChartPoint{Month: entry.Month, Principal: entry.Principal, Interest: entry.Interest}
	}
	return points
}

// Breakdown splits the overall cost of a loan into principal and interest.
func Breakdown(principal, totalInterest int64) []BreakdownSlice {
	return []BreakdownSlice{
		{Name: "Principal", Value: principal, Color: ColorPrincipal},
		{Name: "Interest", Value: totalInterest, Color: ColorInterest},
	}
}
