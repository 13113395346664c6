package amortization

type Preset struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"term"`
	Rate       float64 `json:"rate"`
}

func (p Preset) Terms() Terms {
	return Terms{Principal: p.Amount, AnnualRatePercent: p.Rate, TermMonths: p.TermMonths}
}

// Presets are product definitions; the mortgage term exceeds DefaultLimits,
// so presets are never run through Limits.Validate.
var Presets = []Preset{
	{Code: "consumer", Name: "Consumer loan", Amount: 300_000, TermMonths: 36, Rate: 12.9},
	{Code: "auto", Name: "Car loan", Amount: 1_200_000, TermMonths: 60, Rate: 9.5},
	{Code: "mortgage", Name: "Mortgage", Amount: 5_000_000, TermMonths: 240, Rate: 6.5},
	{Code: "express", Name: "Express loan", Amount: 100_000, TermMonths: 12, Rate: 15.9},
}

func PresetByCode(code string) (Preset, bool) {
	for _, p := range Presets {
		if p.Code == code {
			return p, true
		}
	}
	return Preset{}, false
}
