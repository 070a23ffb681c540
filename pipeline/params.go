package pipeline

import (
	"errors"

	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-raman/table"
)

// ErrNoMeasurement is returned when neither ranges nor peaks are requested.
var ErrNoMeasurement = errors.New("pipeline: no ranges or peaks requested")

// Params holds the measurement parameters of a run.
type Params struct {
	Ranges         []spectra.Range
	Peaks          []float64
	Ratios         []string // expressions over range columns, exported as "Ratios"
	Formulas       []string // expressions over range columns, exported as "Spectral Math"
	PairwiseRatios bool
}

// Validate checks ranges and peak positions. Expressions are not checked
// here: a bad expression only affects its own column.
func (p Params) Validate() error {
	if len(p.Ranges) == 0 && len(p.Peaks) == 0 {
		return ErrNoMeasurement
	}
	if err := spectra.ValidateRanges(p.Ranges); err != nil {
		return err
	}
	return spectra.ValidatePeaks(p.Peaks)
}

// RangeColumns returns the range column names in request order. Ratio and
// formula expressions index into this list.
func (p Params) RangeColumns() []string {
	out := make([]string, len(p.Ranges))
	for i, r := range p.Ranges {
		out[i] = r.Label()
	}
	return out
}

// PeakColumns returns the peak column names in request order.
func (p Params) PeakColumns() []string {
	out := make([]string, len(p.Peaks))
	for i, c := range p.Peaks {
		out[i] = table.PeakLabel(c)
	}
	return out
}

// Columns returns all measurement columns: ranges first, then peaks.
func (p Params) Columns() []string {
	return append(p.RangeColumns(), p.PeakColumns()...)
}
