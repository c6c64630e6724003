package pricing

import "time"

// DateRange is a validity window. A nil bound is open-ended.
type DateRange struct {
	From *time.Time
	Upto *time.Time
}

// NewDateRange builds a closed range from two days
func NewDateRange(from, upto time.Time) DateRange {
	return DateRange{From: &from, Upto: &upto}
}

// Overlaps reports whether other shares at least one day with r.
// A nil bound on r drops the matching condition, a nil bound on other matches anything.
func (r DateRange) Overlaps(other DateRange) bool {
	if r.Upto != nil && other.From != nil && other.From.After(*r.Upto) {
		return false
	}
	if r.From != nil && other.Upto != nil && other.Upto.Before(*r.From) {
		return false
	}
	return true
}

// Contains reports whether day falls inside r
func (r DateRange) Contains(day time.Time) bool {
	if r.From != nil && day.Before(*r.From) {
		return false
	}
	if r.Upto != nil && day.After(*r.Upto) {
		return false
	}
	return true
}
