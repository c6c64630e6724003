package agreement

import "github.com/shopspring/decimal"

// priceTolerance is the smallest difference reported as a change
var priceTolerance = decimal.RequireFromString("0.01")

// RateChange compares a rate recorded on the agreement with today's rate
type RateChange struct {
	Original decimal.Decimal `json:"original"`
	Current  decimal.Decimal `json:"current"`
	Diff     decimal.Decimal `json:"diff"`
	Percent  decimal.Decimal `json:"percent"`
	// Increased is true when the rate went up by at least the tolerance
	Increased bool `json:"increased"`
}

// NewRateChange computes the difference and percentage. Percent is zero when original is not positive.
func NewRateChange(original, current decimal.Decimal) RateChange {
	diff := current.Sub(original)
	pct := decimal.Zero
	if original.IsPositive() {
		pct = diff.Div(original).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return RateChange{
		Original:  original,
		Current:   current,
		Diff:      diff,
		Percent:   pct,
		Increased: diff.GreaterThanOrEqual(priceTolerance),
	}
}

// Changed reports whether the rate moved by at least the tolerance
func (r RateChange) Changed() bool {
	return r.Diff.Abs().GreaterThanOrEqual(priceTolerance)
}

// PriceChangeIndicator summarises how standard and agreement rates moved since the agreement was made
type PriceChangeIndicator struct {
	Currency  string     `json:"currency"`
	Standard  RateChange `json:"standard"`
	Agreement RateChange `json:"agreement"`
	UpToDate  bool       `json:"up_to_date"`
}

// NewPriceChangeIndicator builds the indicator for one agreement row
func NewPriceChangeIndicator(currency string, originalStd, currentStd, originalAgr, currentAgr decimal.Decimal) PriceChangeIndicator {
	std := NewRateChange(originalStd, currentStd)
	agr := NewRateChange(originalAgr, currentAgr)
	return PriceChangeIndicator{
		Currency:  currency,
		Standard:  std,
		Agreement: agr,
		UpToDate:  !std.Changed() && !agr.Changed(),
	}
}
