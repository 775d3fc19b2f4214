package format

// Total is a running sum of currency-like values.
//
// It is a plain float64 accumulation, so totals match what the dashboard
// always printed, rounding included. Which values count is decided by
// Policy: under ZeroAsMissing a 0 is skipped exactly like nil.
type Total struct {
	Policy ZeroPolicy
	Sum    float64
	Count  int
}

// Add accumulates v and reports whether it was counted.
func (t *Total) Add(v *float64) bool {
	if !counts(v, t.Policy) {
		return false
	}
	t.Sum += *v
	t.Count++
	return true
}

// Accumulated reports whether at least one value was counted.
func (t *Total) Accumulated() bool {
	return t.Count > 0
}

// Float returns a pointer to v, for building nullable amounts.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }
