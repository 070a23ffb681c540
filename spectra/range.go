package spectra

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRange is wrapped by every range validation or parse failure.
var ErrInvalidRange = errors.New("spectra: invalid range")

// RangeError describes a rejected range or range string.
type RangeError struct {
	Input  string // offending text, if the error came from parsing
	Reason string
	Err    error // underlying parse error, if any
}

func (e *RangeError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid range %q: %s", e.Input, e.Reason)
	}
	return "invalid range: " + e.Reason
}

func (e *RangeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidRange, e.Err}
	}
	return []error{ErrInvalidRange}
}

// MaxMagnitude bounds range limits and peak positions so their truncated
// labels are exact integers.
const MaxMagnitude = 1e15

// Range is a closed wavenumber interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether w lies inside the closed interval.
func (r Range) Contains(w float64) bool { return w >= r.Min && w <= r.Max }

// Width returns Max - Min.
func (r Range) Width() float64 { return r.Max - r.Min }

// Validate rejects non-finite bounds and intervals with Min >= Max.
func (r Range) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return &RangeError{Reason: fmt.Sprintf("bounds must be finite, got (%v, %v)", r.Min, r.Max)}
	}
	if math.Abs(r.Min) > MaxMagnitude || math.Abs(r.Max) > MaxMagnitude {
		return &RangeError{Reason: fmt.Sprintf("bounds (%v, %v) exceed ±%g", r.Min, r.Max, MaxMagnitude)}
	}
	if r.Min >= r.Max {
		return &RangeError{Reason: fmt.Sprintf("min %v must be below max %v", r.Min, r.Max)}
	}
	return nil
}

// Label returns the column key "{min}–{max}" with both bounds truncated to
// integers and joined by an en dash. Existing exported sheets depend on this
// exact form.
func (r Range) Label() string {
	return fmt.Sprintf("%d–%d", int64(math.Trunc(r.Min)), int64(math.Trunc(r.Max)))
}

func (r Range) String() string { return r.Label() }

// ParseRanges parses "min,max; min,max; ..." into validated ranges.
// Empty segments are ignored. Two ranges with the same label are rejected
// because they would collide as table columns.
func ParseRanges(s string) ([]Range, error) {
	var out []Range
	seen := make(map[string]string)
	for _, part := range splitList(s) {
		bounds := strings.Split(part, ",")
		if len(bounds) != 2 {
			return nil, &RangeError{Input: part, Reason: "expected \"min,max\""}
		}
		lo, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		if err != nil {
			return nil, &RangeError{Input: part, Reason: "min is not a number", Err: err}
		}
		hi, err := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
		if err != nil {
			return nil, &RangeError{Input: part, Reason: "max is not a number", Err: err}
		}
		r := Range{Min: lo, Max: hi}
		if err := r.Validate(); err != nil {
			var re *RangeError
			if errors.As(err, &re) {
				re.Input = part
			}
			return nil, err
		}
		if prev, ok := seen[r.Label()]; ok {
			return nil, &RangeError{Input: part, Reason: fmt.Sprintf("column %s already used by %q", r.Label(), prev)}
		}
		seen[r.Label()] = part
		out = append(out, r)
	}
	return out, nil
}

// ValidateRanges checks each range and rejects duplicate labels.
func ValidateRanges(ranges []Range) error {
	seen := make(map[string]bool, len(ranges))
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return err
		}
		if seen[r.Label()] {
			return &RangeError{Reason: "duplicate column " + r.Label()}
		}
		seen[r.Label()] = true
	}
	return nil
}

// ParsePeaks parses "p1; p2; ..." into finite peak positions. Commas are
// accepted as separators as well.
func ParsePeaks(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(strings.ReplaceAll(s, ",", ";")) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, &RangeError{Input: part, Reason: "peak position is not a number", Err: err}
		}
		if err := validatePeak(v); err != nil {
			err.Input = part
			return nil, err
		}
		out = append(out, v)
	}
	if err := ValidatePeaks(out); err != nil {
		return nil, err
	}
	return out, nil
}

// PeakKey returns the integer a peak position is labelled by. Two peaks with
// the same key would share one table column.
func PeakKey(p float64) int64 { return int64(math.Trunc(p)) }

// ValidatePeaks checks that every peak is finite and that no two peaks share
// a PeakKey.
func ValidatePeaks(peaks []float64) error {
	seen := make(map[int64]float64, len(peaks))
	for _, p := range peaks {
		if err := validatePeak(p); err != nil {
			return err
		}
		if prev, ok := seen[PeakKey(p)]; ok {
			return &RangeError{Reason: fmt.Sprintf("peaks %v and %v share column Peak %d", prev, p, PeakKey(p))}
		}
		seen[PeakKey(p)] = p
	}
	return nil
}

func validatePeak(p float64) *RangeError {
	switch {
	case math.IsNaN(p) || math.IsInf(p, 0):
		return &RangeError{Reason: fmt.Sprintf("peak position %v must be finite", p)}
	case math.Abs(p) > MaxMagnitude:
		return &RangeError{Reason: fmt.Sprintf("peak position %v exceeds ±%g", p, MaxMagnitude)}
	}
	return nil
}

// SplitExpressions splits a semicolon-separated expression list, trimming
// whitespace and dropping empty entries.
func SplitExpressions(s string) []string {
	return splitList(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
