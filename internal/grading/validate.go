package grading

import "math"

// Validate reports whether input is numerically equivalent to correct within
// an absolute tolerance. Two non-finite values match when their signs match;
// DNE (NaN) has no sign, so DNE only matches DNE.
func Validate(input string, correct Answer, tolerance float64) bool {
	got, ok := ParseValue(input)
	if !ok {
		return false
	}
	want, ok := correct.Resolve()
	if !ok {
		return false
	}
	gotFinite, wantFinite := isFinite(got), isFinite(want)
	switch {
	case !gotFinite && !wantFinite:
		return sign(got) == sign(want)
	case gotFinite != wantFinite:
		return false
	}
	return math.Abs(got-want) <= tolerance
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func sign(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 0:
		return 1
	}
	return -1
}

// Checker grades answers with a fixed tolerance. The zero value uses
// DefaultTolerance.
type Checker struct {
	Tolerance float64
}

func NewChecker(tolerance float64) *Checker {
	return &Checker{Tolerance: tolerance}
}

func (c *Checker) Grade(input string, correct Answer) bool {
	tol := DefaultTolerance
	if c != nil && c.Tolerance > 0 {
		tol = c.Tolerance
	}
	return Validate(input, correct, tol)
}
