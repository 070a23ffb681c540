package pipeline

import (
	"time"

	"github.com/cwbudde/algo-raman/table"
)

// Report is the outcome of one run.
type Report struct {
	RunID   string
	Params  Params
	Files   []*FileResult // in processing order
	Started time.Time
	Elapsed time.Duration
}

// Counts returns the number of OK, skipped and failed files.
func (r *Report) Counts() (ok, skipped, failed int) {
	for _, f := range r.Files {
		switch f.Status {
		case StatusOK:
			ok++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return ok, skipped, failed
}

// OK returns the successful results in order.
func (r *Report) OK() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if f.Status == StatusOK {
			out = append(out, f)
		}
	}
	return out
}

// Failed returns the failed results in order.
func (r *Report) Failed() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if f.Status == StatusFailed {
			out = append(out, f)
		}
	}
	return out
}

// Tables holds the derived result tables of a run. Optional tables are nil
// when not requested.
type Tables struct {
	Integration *table.Table
	Ratios      *table.Table // Params.Ratios expressions
	Math        *table.Table // Params.Formulas expressions
	Pairwise    *table.Table // every range pair, both directions
	Summary     []table.ColumnSummary

	// FormulaErrors lists expressions that became NaN columns.
	FormulaErrors []error
}

// Tables assembles the OK results into the integration table and derives
// the ratio, formula, pairwise and summary tables from it.
func (r *Report) Tables() Tables {
	var sources []table.Source
	for _, f := range r.OK() {
		sources = append(sources, f.Source())
	}

	out := Tables{Integration: table.Build(sources)}
	rangeCols := r.Params.RangeColumns()

	if len(r.Params.Ratios) > 0 {
		var errs []error
		out.Ratios, errs = table.Evaluate(out.Integration, r.Params.Ratios, rangeCols)
		out.FormulaErrors = append(out.FormulaErrors, errs...)
	}
	if len(r.Params.Formulas) > 0 {
		var errs []error
		out.Math, errs = table.Evaluate(out.Integration, r.Params.Formulas, rangeCols)
		out.FormulaErrors = append(out.FormulaErrors, errs...)
	}
	if r.Params.PairwiseRatios && len(rangeCols) > 1 {
		out.Pairwise = table.Ratios(out.Integration, rangeCols)
	}
	out.Summary = table.Summarize(out.Integration, r.Params.Columns())
	return out
}
