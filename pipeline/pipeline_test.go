package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-raman/internal/cache"
	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-raman/spectra/specfile"
	"github.com/cwbudde/algo-raman/table/formula"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	return dir
}

const (
	singleTxt = "0 1\n1 2\n2 3\n3 4\n4 5\n"
	mapTxt    = "100 200 300\n1 2 10 40 30\n3 4 15 25 35\n"
	badTxt    = "0 1\n1 oops\n"
)

func testParams(t *testing.T) Params {
	t.Helper()
	ranges, err := spectra.ParseRanges("0,4; 100,300")
	require.NoError(t, err)
	return Params{Ranges: ranges, Peaks: []float64{200}}
}

func TestResolve(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.txt":       singleTxt,
		"a.SPC":       "",
		"notes.csv":   "x",
		"sub/c.txt":   singleTxt,
		"sub/d.json":  "{}",
		"sub/e/f.spc": "",
	})

	got, err := Resolve([]string{dir}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.SPC"), filepath.Join(dir, "b.txt")}, got)

	got, err = Resolve([]string{dir}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.SPC"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.txt"),
		filepath.Join(dir, "sub", "e", "f.spc"),
	}, got)

	// File roots are kept even with unsupported extensions, and duplicates
	// collapse.
	csv := filepath.Join(dir, "notes.csv")
	got, err = Resolve([]string{csv, filepath.Join(dir, "b.txt"), dir}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.SPC"), filepath.Join(dir, "b.txt"), csv}, got)
}

func TestResolveErrors(t *testing.T) {
	empty := t.TempDir()
	_, err := Resolve([]string{empty}, true)
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = Resolve(nil, false)
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = Resolve([]string{filepath.Join(empty, "missing")}, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParamsValidate(t *testing.T) {
	assert.ErrorIs(t, Params{}.Validate(), ErrNoMeasurement)
	assert.NoError(t, Params{Peaks: []float64{1000}}.Validate())
	assert.ErrorIs(t, Params{Ranges: []spectra.Range{{Min: 5, Max: 1}}}.Validate(), spectra.ErrInvalidRange)
	assert.ErrorIs(t, Params{Peaks: []float64{math.Inf(1)}}.Validate(), spectra.ErrInvalidRange)
	assert.ErrorIs(t, Params{Peaks: []float64{1000, 1000.8}}.Validate(), spectra.ErrInvalidRange,
		"peaks sharing a column must be rejected")

	p := Params{Ranges: []spectra.Range{{Min: 100.7, Max: 200.2}}, Peaks: []float64{1001.5}}
	assert.Equal(t, []string{"100–200", "Peak 1001"}, p.Columns())
}

func TestRunClassifiesFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt":     singleTxt,
		"map.txt":   mapTxt,
		"bad.txt":   badTxt,
		"notes.csv": "not a spectrum",
	})
	paths, err := Resolve([]string{dir, filepath.Join(dir, "notes.csv")}, false)
	require.NoError(t, err)

	rep, err := NewDriver().Run(paths, testParams(t))
	require.NoError(t, err)
	require.Len(t, rep.Files, 4)
	assert.NotEmpty(t, rep.RunID)

	ok, skipped, failed := rep.Counts()
	assert.Equal(t, []int{2, 1, 1}, []int{ok, skipped, failed})

	bad := rep.Failed()[0]
	assert.Equal(t, "bad.txt", bad.Name)
	assert.ErrorIs(t, bad.Err, specfile.ErrFileFormat)

	names := []string{}
	for _, f := range rep.OK() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.txt", "map.txt"}, names)
}

func TestRunMeasurements(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": singleTxt, "map.txt": mapTxt})
	paths, err := Resolve([]string{dir}, false)
	require.NoError(t, err)

	rep, err := NewDriver().Run(paths, testParams(t))
	require.NoError(t, err)

	single, m := rep.Files[0], rep.Files[1]
	assert.InDelta(t, 0.0, single.Areas.Areas(spectra.Range{Min: 0, Max: 4})[0], 1e-12)
	assert.Equal(t, []float64{0}, single.Areas.Areas(spectra.Range{Min: 100, Max: 300}))

	assert.InDeltaSlice(t, []float64{2000, 0}, m.Areas.Areas(spectra.Range{Min: 100, Max: 300}), 1e-9)
	assert.InDeltaSlice(t, []float64{20, 0}, m.Peaks.Heights(200), 1e-9)
}

func TestReportTables(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": singleTxt, "map.txt": mapTxt, "bad.txt": badTxt})
	paths, err := Resolve([]string{dir}, false)
	require.NoError(t, err)

	p := testParams(t)
	p.Ratios = []string{"2/1"}
	p.Formulas = []string{"2*0.5", "3+1"}
	p.PairwiseRatios = true

	rep, err := NewDriver().Run(paths, p)
	require.NoError(t, err)
	tables := rep.Tables()

	integ := tables.Integration
	assert.Equal(t, []string{"Filename", "Spectrum #", "X_Coordinate", "Y_Coordinate", "0–4", "100–300", "Peak 200"}, integ.Header())
	require.Equal(t, 3, integ.Len())
	assert.Equal(t, "a.txt", integ.Rows[0].Filename)
	assert.True(t, math.IsNaN(integ.Rows[0].Coordinates[0]))
	assert.Equal(t, []float64{1, 2}, integ.Rows[1].Coordinates)

	require.NotNil(t, tables.Ratios)
	assert.True(t, math.IsInf(tables.Ratios.Rows[1].Values[0], 1))

	require.NotNil(t, tables.Math)
	assert.Equal(t, []string{"2*0.5", "3+1"}, tables.Math.Columns)
	assert.InDelta(t, 1000.0, tables.Math.Rows[1].Values[0], 1e-9)
	assert.True(t, math.IsNaN(tables.Math.Rows[1].Values[1]))
	require.Len(t, tables.FormulaErrors, 1)
	assert.ErrorIs(t, tables.FormulaErrors[0], formula.ErrFormula)

	require.NotNil(t, tables.Pairwise)
	assert.Equal(t, []string{"0–4/100–300", "100–300/0–4"}, tables.Pairwise.Columns)

	require.Len(t, tables.Summary, 3)
	assert.Equal(t, 3, tables.Summary[1].Count)
}

func TestSinglePixelMapExportsWithoutCoordinates(t *testing.T) {
	dir := writeTree(t, map[string]string{"m.txt": "100 200 300\n1 2 10 20 30\n"})
	ranges, err := spectra.ParseRanges("100,300")
	require.NoError(t, err)

	rep, err := NewDriver().Run([]string{filepath.Join(dir, "m.txt")}, Params{Ranges: ranges})
	require.NoError(t, err)
	require.Len(t, rep.OK(), 1)
	assert.Empty(t, rep.OK()[0].Source().Coordinates)

	integ := rep.Tables().Integration
	assert.Equal(t, []string{"Filename", "100–300"}, integ.Header())
	assert.Equal(t, []any{"m.txt", 0.0}, integ.Cells(0))
}

func TestReportTablesOptionalSheets(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": singleTxt})
	rep, err := NewDriver().Run([]string{filepath.Join(dir, "a.txt")}, Params{Peaks: []float64{2}})
	require.NoError(t, err)

	tables := rep.Tables()
	assert.Nil(t, tables.Ratios)
	assert.Nil(t, tables.Math)
	assert.Nil(t, tables.Pairwise)
	assert.False(t, tables.Integration.HasSpectrum)
	assert.Equal(t, []string{"Filename", "Peak 2"}, tables.Integration.Header())
}

func TestRunRejectsParamsBeforeIO(t *testing.T) {
	d := NewDriver()
	_, err := d.Run([]string{"/does/not/exist.txt"}, Params{})
	assert.ErrorIs(t, err, ErrNoMeasurement)
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) InvalidateAll() { c.n++ }

func TestDriverCacheAndInvalidate(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": singleTxt})
	path := filepath.Join(dir, "a.txt")

	c := cache.New[string, *spectra.Set](0)
	inv := &countingInvalidator{}
	d := NewDriver(WithSpectraCache(c), WithInvalidator(inv), WithLogger(nil))

	_, err := d.Run([]string{path}, testParams(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("0 9\n4 9\n"), 0o600))

	rep, err := d.Run([]string{path}, testParams(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Stats().Hits)
	assert.Equal(t, 5, rep.Files[0].Set.Spectra[0].Len(), "stale cached set expected")

	d.InvalidateAll()
	assert.Equal(t, 1, inv.n)
	assert.Equal(t, 0, c.Len())

	rep, err = d.Run([]string{path}, testParams(t))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Files[0].Set.Spectra[0].Len())
}
