package grading

import (
	"math"
	"strconv"
)

// DefaultTolerance is the absolute band used when no tolerance is configured.
const DefaultTolerance = 0.001

// Answer is the expected value of a problem. It is either authored as text
// ("sqrt(2)/2", "dne") or as a plain number.
type Answer struct {
	text    string
	value   float64
	numeric bool
}

func TextAnswer(s string) Answer { return Answer{text: s} }

func NumberAnswer(v float64) Answer { return Answer{value: v, numeric: true} }

// DNE is the expected value of a limit or derivative that does not exist.
func DNE() Answer { return NumberAnswer(math.NaN()) }

// Resolve returns the numeric value of the answer. Text answers go through
// ParseValue.
func (a Answer) Resolve() (float64, bool) {
	if a.numeric {
		return a.value, true
	}
	return ParseValue(a.text)
}

func (a Answer) String() string {
	if !a.numeric {
		return a.text
	}
	switch {
	case math.IsNaN(a.value):
		return "dne"
	case math.IsInf(a.value, 1):
		return "infinity"
	case math.IsInf(a.value, -1):
		return "-infinity"
	}
	return strconv.FormatFloat(a.value, 'g', -1, 64)
}
