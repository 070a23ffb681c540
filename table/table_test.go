package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-raman/table/formula"
)

func single(name string, series ...Series) Source {
	return Source{Filename: name, Pixels: 1, Series: series}
}

func TestPeakLabel(t *testing.T) {
	assert.Equal(t, "Peak 1001", PeakLabel(1001.9))
	assert.Equal(t, "Peak -3", PeakLabel(-3.7))
}

func TestBuildSinglePixelDropsSpectrumColumn(t *testing.T) {
	tbl := Build([]Source{
		single("a.txt", Series{Name: "100–200", Values: []float64{1}}),
		single("b.txt", Series{Name: "100–200", Values: []float64{2}}),
	})

	assert.False(t, tbl.HasSpectrum)
	assert.Equal(t, 0, tbl.Coordinates)
	assert.Equal(t, []string{"Filename", "100–200"}, tbl.Header())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []any{"a.txt", 1.0}, tbl.Cells(0))
	assert.Equal(t, []any{"b.txt", 2.0}, tbl.Cells(1))
}

func TestBuildMapRows(t *testing.T) {
	tbl := Build([]Source{
		{
			Filename:    "map.txt",
			Pixels:      2,
			Coordinates: []spectra.Coordinate{{1, 2}, {3, 4}},
			Series:      []Series{{Name: "A", Values: []float64{10, 20}}},
		},
		single("one.txt", Series{Name: "A", Values: []float64{5}}, Series{Name: "B", Values: []float64{6}}),
		{
			Filename:    "line.txt",
			Pixels:      2,
			Coordinates: []spectra.Coordinate{{7}, {8}},
			Series:      []Series{{Name: "A", Values: []float64{30}}},
		},
	})

	assert.True(t, tbl.HasSpectrum)
	assert.Equal(t, 2, tbl.Coordinates)
	assert.Equal(t, []string{"Filename", "Spectrum #", "X_Coordinate", "Y_Coordinate", "A", "B"}, tbl.Header())
	require.Equal(t, 5, tbl.Len())

	assert.Equal(t, Key{Filename: "map.txt", Spectrum: 2, Coordinates: []float64{3, 4}}, tbl.Rows[1].Key)

	one := tbl.Rows[2]
	assert.Equal(t, 1, one.Spectrum)
	assert.True(t, math.IsNaN(one.Coordinates[0]) && math.IsNaN(one.Coordinates[1]))
	assert.Equal(t, []float64{5, 6}, one.Values)

	// Zero-padded coordinates, a short series reads as 0 and an absent
	// series as NaN.
	last := tbl.Rows[4]
	assert.Equal(t, []float64{8, 0}, last.Coordinates)
	assert.Equal(t, 0.0, last.Values[0])
	assert.True(t, math.IsNaN(last.Values[1]))

	a, ok := tbl.Column("A")
	require.True(t, ok)
	assert.Len(t, a, 5)
	_, ok = tbl.Column("missing")
	assert.False(t, ok)
}

func TestBuildClipsCoordinatesAndSkipsEmpty(t *testing.T) {
	tbl := Build([]Source{
		{Filename: "empty.txt"},
		{
			Filename:    "cube.txt",
			Pixels:      2,
			Coordinates: []spectra.Coordinate{{1, 2, 3, 4}, {5, 6, 7, 8}},
			Series:      []Series{{Name: "A", Values: []float64{1, 2}}},
		},
	})
	assert.Equal(t, MaxCoordinates, tbl.Coordinates)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []float64{5, 6, 7}, tbl.Rows[1].Coordinates)
}

func TestBuildSinglePixelMapHasNoCoordinates(t *testing.T) {
	tbl := Build([]Source{{
		Filename:    "m.txt",
		Pixels:      1,
		Coordinates: []spectra.Coordinate{{1, 2}},
		Series:      []Series{{Name: "100–300", Values: []float64{0}}},
	}})
	assert.Equal(t, 0, tbl.Coordinates)
	assert.False(t, tbl.HasSpectrum)
	assert.Equal(t, []string{"Filename", "100–300"}, tbl.Header())
	assert.Equal(t, []any{"m.txt", 0.0}, tbl.Cells(0))

	// Next to a real map the single-pixel row gets blank coordinates.
	tbl = Build([]Source{
		{Filename: "m.txt", Pixels: 1, Coordinates: []spectra.Coordinate{{1, 2}}, Series: []Series{{Name: "A", Values: []float64{1}}}},
		{Filename: "map.txt", Pixels: 2, Coordinates: []spectra.Coordinate{{3, 4}, {5, 6}}, Series: []Series{{Name: "A", Values: []float64{2, 3}}}},
	})
	require.Equal(t, 3, tbl.Len())
	assert.True(t, math.IsNaN(tbl.Rows[0].Coordinates[0]))
	assert.Equal(t, []float64{3, 4}, tbl.Rows[1].Coordinates)
}

func TestBuildDuplicateSeriesKeepsFirst(t *testing.T) {
	tbl := Build([]Source{single("a.txt",
		Series{Name: "A", Values: []float64{1}},
		Series{Name: "A", Values: []float64{2}},
	)})
	assert.Equal(t, []string{"A"}, tbl.Columns)
	assert.Equal(t, []float64{1}, tbl.Rows[0].Values)
}

func TestRatios(t *testing.T) {
	tbl := Build([]Source{
		single("a.txt", Series{Name: "A", Values: []float64{4}}, Series{Name: "B", Values: []float64{2}}, Series{Name: "C", Values: []float64{0}}),
		single("b.txt", Series{Name: "A", Values: []float64{3}}, Series{Name: "B", Values: []float64{6}}, Series{Name: "C", Values: []float64{1}}),
	})

	r := Ratios(tbl, []string{"A", "B", "C"})
	assert.Equal(t, []string{"A/B", "B/A", "A/C", "C/A", "B/C", "C/B"}, r.Columns)
	require.Equal(t, 2, r.Len())

	assert.Equal(t, []float64{2, 0.5, 0, 0, 0, 0}, r.Rows[0].Values)
	assert.Equal(t, "a.txt", r.Rows[0].Filename)

	for _, row := range r.Rows {
		for c := 0; c < len(r.Columns); c += 2 {
			fwd, back := row.Values[c], row.Values[c+1]
			if fwd != 0 && back != 0 {
				assert.InDelta(t, 1.0, fwd*back, 1e-12, "%s × %s", r.Columns[c], r.Columns[c+1])
			}
		}
	}
}

func TestRatiosMissingColumn(t *testing.T) {
	tbl := Build([]Source{single("a.txt", Series{Name: "A", Values: []float64{4}})})
	r := Ratios(tbl, []string{"A", "Z"})
	assert.Equal(t, []float64{0, 0}, r.Rows[0].Values)
}

func TestEvaluate(t *testing.T) {
	cols := []string{"A", "B", "C"}
	tbl := Build([]Source{
		single("a.txt", Series{Name: "A", Values: []float64{4}}, Series{Name: "B", Values: []float64{2}}, Series{Name: "C", Values: []float64{2}}),
	})

	out, errs := Evaluate(tbl, []string{" 1/(2+3) ", "4*2", "1 +", "1/(2+3)", "2-1"}, cols)
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.ErrorIs(t, err, formula.ErrFormula)
	}

	assert.Equal(t, []string{"1/(2+3)", "4*2", "1 +", "2-1"}, out.Columns)
	vals := out.Rows[0].Values
	assert.InDelta(t, 1.0, vals[0], 1e-12)
	assert.True(t, math.IsNaN(vals[1]))
	assert.True(t, math.IsNaN(vals[2]))
	assert.InDelta(t, -2.0, vals[3], 1e-12)
}

func TestEvaluateDivisionByZero(t *testing.T) {
	tbl := Build([]Source{single("a.txt", Series{Name: "A", Values: []float64{1}}, Series{Name: "B", Values: []float64{0}})})
	out, errs := Evaluate(tbl, []string{"1/2"}, []string{"A", "B"})
	assert.Empty(t, errs)
	assert.True(t, math.IsInf(out.Rows[0].Values[0], 1))
}

func TestSummarize(t *testing.T) {
	tbl := Build([]Source{
		{Filename: "m.txt", Pixels: 5, Series: []Series{{Name: "A", Values: []float64{1, 2, 3, 4, math.NaN()}}}},
		single("s.txt", Series{Name: "B", Values: []float64{7}}),
	})

	sum := Summarize(tbl, []string{"A", "B", "missing"})
	require.Len(t, sum, 3)

	a := sum[0]
	assert.Equal(t, 4, a.Count)
	assert.InDelta(t, 2.5, a.Mean, 1e-12)
	assert.InDelta(t, 2.5, a.Median, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), a.StdDev, 1e-12)
	assert.Equal(t, 1.0, a.Min)
	assert.Equal(t, 4.0, a.Max)

	b := sum[1]
	assert.Equal(t, 1, b.Count)
	assert.Equal(t, 7.0, b.Mean)
	assert.True(t, math.IsNaN(b.StdDev))

	assert.Equal(t, 0, sum[2].Count)
	assert.True(t, math.IsNaN(sum[2].Mean))
	assert.Len(t, sum[2].Cells(), len(SummaryColumns))
}
