package table

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ColumnSummary describes the finite values of one column.
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	StdDev float64 // sample standard deviation
	Median float64
	Min    float64
	Max    float64
}

// SummaryColumns is the header of a summary sheet.
var SummaryColumns = []string{"Column", "Count", "Mean", "Std Dev", "Median", "Min", "Max"}

// Summarize computes descriptive statistics for each named column, skipping
// NaN and Inf values. Columns missing from t, or with no finite values,
// report a zero count and NaN statistics.
func Summarize(t *Table, columns []string) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(columns))
	for _, name := range columns {
		vals, _ := t.Column(name)
		out = append(out, summarize(name, finite(vals)))
	}
	return out
}

func summarize(name string, data stats.Float64Data) ColumnSummary {
	s := ColumnSummary{Column: name, Count: len(data)}
	if len(data) == 0 {
		nan := math.NaN()
		s.Mean, s.StdDev, s.Median, s.Min, s.Max = nan, nan, nan, nan, nan
		return s
	}
	s.Mean, _ = stats.Mean(data)
	s.StdDev, _ = stats.StandardDeviationSample(data)
	s.Median, _ = stats.Median(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	return s
}

func finite(vals []float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Cells returns the summary as a row aligned with SummaryColumns.
func (s ColumnSummary) Cells() []any {
	return []any{s.Column, s.Count, s.Mean, s.StdDev, s.Median, s.Min, s.Max}
}
