package table

import (
	"math"
	"strings"

	"github.com/cwbudde/algo-raman/table/formula"
)

// RatioName returns the column name of num/den.
func RatioName(num, den string) string { return num + "/" + den }

// Ratios computes c1/c2 and c2/c1 for every unordered pair of columns, in
// the order given. A zero denominator or a missing operand yields exactly 0.
func Ratios(t *Table, columns []string) *Table {
	var names []string
	type pair struct{ num, den int }
	var pairs []pair
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			names = append(names, RatioName(columns[i], columns[j]), RatioName(columns[j], columns[i]))
			pairs = append(pairs, pair{i, j}, pair{j, i})
		}
	}

	idx := make([]int, len(columns))
	for i, c := range columns {
		idx[i] = t.Index(c)
	}

	out := t.Derive(names)
	for r, row := range t.Rows {
		for c, p := range pairs {
			out.Rows[r].Values[c] = ratio(value(row, idx[p.num]), value(row, idx[p.den]))
		}
	}
	return out
}

func ratio(num, den float64) float64 {
	v := num / den
	if den == 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func value(row Row, i int) float64 {
	if i < 0 {
		return math.NaN()
	}
	return row.Values[i]
}

// Evaluate computes one column per formula. Integer literals in a formula
// refer to columns by 1-based position. A formula that does not parse, or
// refers past the end of columns, becomes a NaN column and its error is
// returned; the remaining formulas are unaffected. Repeated formulas are
// evaluated once.
func Evaluate(t *Table, formulas []string, columns []string) (*Table, []error) {
	var (
		names    []string
		compiled []*formula.Formula
		errs     []error
	)
	seen := make(map[string]bool, len(formulas))
	for _, src := range formulas {
		name := strings.TrimSpace(src)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		f, err := formula.Parse(name)
		if err == nil {
			err = f.Check(len(columns))
		}
		if err != nil {
			errs = append(errs, err)
			f = nil
		}
		names = append(names, name)
		compiled = append(compiled, f)
	}

	idx := make([]int, len(columns))
	for i, c := range columns {
		idx[i] = t.Index(c)
	}

	out := t.Derive(names)
	vals := make([]float64, len(columns))
	for r, row := range t.Rows {
		for i := range idx {
			vals[i] = value(row, idx[i])
		}
		for c, f := range compiled {
			if f != nil {
				out.Rows[r].Values[c] = f.Eval(vals)
			}
		}
	}
	return out, errs
}
