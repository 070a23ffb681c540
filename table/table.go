package table

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-raman/spectra"
)

// Key column names.
const (
	ColumnFilename = "Filename"
	ColumnSpectrum = "Spectrum #"
)

// MaxCoordinates is the number of coordinate axes exported.
const MaxCoordinates = 3

var coordinateColumns = [MaxCoordinates]string{"X_Coordinate", "Y_Coordinate", "Z_Coordinate"}

// PeakLabel returns the column name for a peak target, "Peak {trunc}".
func PeakLabel(target float64) string {
	return fmt.Sprintf("Peak %d", spectra.PeakKey(target))
}

// Series is one named measurement with a value per pixel.
type Series struct {
	Name   string
	Values []float64
}

// Source is the measurement of one file.
type Source struct {
	Filename    string
	Pixels      int
	Coordinates []spectra.Coordinate // empty, or one per pixel
	Series      []Series
}

// Key identifies a row.
type Key struct {
	Filename    string
	Spectrum    int       // 1-based pixel number
	Coordinates []float64 // Table.Coordinates entries, NaN when unknown
}

// Row is a key plus one value per table column.
type Row struct {
	Key
	Values []float64
}

// Table is a keyed, column-oriented result sheet.
type Table struct {
	HasSpectrum bool     // whether the Spectrum # column is shown
	Coordinates int      // number of coordinate columns
	Columns     []string // value columns, in order
	Rows        []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Header returns all column names including key columns.
func (t *Table) Header() []string {
	h := []string{ColumnFilename}
	if t.HasSpectrum {
		h = append(h, ColumnSpectrum)
	}
	h = append(h, coordinateColumns[:t.Coordinates]...)
	return append(h, t.Columns...)
}

// Index returns the position of column name in Columns, or -1.
func (t *Table) Index(name string) int {
	return slices.Index(t.Columns, name)
}

// Column returns the values of a value column in row order.
func (t *Table) Column(name string) ([]float64, bool) {
	i := t.Index(name)
	if i < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row.Values[i]
	}
	return out, true
}

// Cells returns row r as header-aligned cells: the filename as a string,
// the spectrum number as an int and every other cell as a float64.
func (t *Table) Cells(r int) []any {
	row := t.Rows[r]
	cells := make([]any, 0, 2+t.Coordinates+len(t.Columns))
	cells = append(cells, row.Filename)
	if t.HasSpectrum {
		cells = append(cells, row.Spectrum)
	}
	for _, c := range row.Coordinates {
		cells = append(cells, c)
	}
	for _, v := range row.Values {
		cells = append(cells, v)
	}
	return cells
}

// Derive returns an empty table with the same keys as t and the given
// value columns. All values start as NaN.
func (t *Table) Derive(columns []string) *Table {
	out := &Table{
		HasSpectrum: t.HasSpectrum,
		Coordinates: t.Coordinates,
		Columns:     slices.Clone(columns),
		Rows:        make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = Row{Key: row.Key, Values: nans(len(columns))}
	}
	return out
}

// Build assembles sources into one wide table. Rows follow source order and
// then pixel order; value columns follow first appearance.
func Build(sources []Source) *Table {
	t := &Table{}
	for _, src := range sources {
		if isMap(src) && len(src.Coordinates) > 0 {
			t.Coordinates = max(t.Coordinates, min(len(src.Coordinates[0]), MaxCoordinates))
		}
		for _, s := range src.Series {
			if !slices.Contains(t.Columns, s.Name) {
				t.Columns = append(t.Columns, s.Name)
			}
		}
	}

	for _, src := range sources {
		if src.Pixels <= 0 {
			continue
		}
		lookup := make(map[string][]float64, len(src.Series))
		for _, s := range src.Series {
			if _, dup := lookup[s.Name]; !dup {
				lookup[s.Name] = s.Values
			}
		}
		for p := 0; p < src.Pixels; p++ {
			row := Row{
				Key:    Key{Filename: src.Filename, Spectrum: p + 1, Coordinates: t.coordinates(src, p)},
				Values: make([]float64, len(t.Columns)),
			}
			for c, name := range t.Columns {
				vals, ok := lookup[name]
				switch {
				case !ok:
					row.Values[c] = math.NaN()
				case p < len(vals):
					row.Values[c] = vals[p]
				default:
					row.Values[c] = 0
				}
			}
			t.Rows = append(t.Rows, row)
		}
	}

	t.HasSpectrum = distinctSpectra(t.Rows)
	return t
}

// isMap reports whether src contributes per-pixel rows with coordinates. A
// map file holding a single pixel is exported like a single spectrum.
func isMap(src Source) bool { return src.Pixels > 1 }

// coordinates pads map coordinates with zeros up to the table width and
// leaves them NaN for sources that have none.
func (t *Table) coordinates(src Source, p int) []float64 {
	if t.Coordinates == 0 {
		return nil
	}
	out := make([]float64, t.Coordinates)
	if !isMap(src) || p >= len(src.Coordinates) {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	copy(out, src.Coordinates[p])
	return out
}

func distinctSpectra(rows []Row) bool {
	for _, r := range rows[min(1, len(rows)):] {
		if r.Spectrum != rows[0].Spectrum {
			return true
		}
	}
	return false
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
