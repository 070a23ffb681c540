// Package export writes result tables to an xlsx workbook, one sheet per
// table. NaN and infinite values are written as blank cells.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-raman/pipeline"
	"github.com/cwbudde/algo-raman/table"
)

// Sheet names used by FromTables.
const (
	SheetIntegration = "Integration"
	SheetRatios      = "Ratios"
	SheetMath        = "Spectral Math"
	SheetPairwise    = "Pairwise Ratios"
	SheetSummary     = "Summary"
)

// ErrEmptyWorkbook is returned when saving a workbook without sheets.
var ErrEmptyWorkbook = errors.New("export: workbook has no sheets")

// Sheet is a header row plus data rows of strings, ints and floats.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []Sheet
}

// TableSheet converts a result table into a sheet.
func TableSheet(name string, t *table.Table) Sheet {
	s := Sheet{Name: name, Header: t.Header(), Rows: make([][]any, t.Len())}
	for i := range t.Rows {
		s.Rows[i] = t.Cells(i)
	}
	return s
}

// SummarySheet converts column summaries into a sheet.
func SummarySheet(name string, sums []table.ColumnSummary) Sheet {
	s := Sheet{Name: name, Header: table.SummaryColumns, Rows: make([][]any, len(sums))}
	for i, cs := range sums {
		s.Rows[i] = cs.Cells()
	}
	return s
}

// FromTables lays out the tables of a run: Integration first, then the
// optional Ratios, Spectral Math and Pairwise Ratios sheets, then Summary.
func FromTables(t pipeline.Tables) *Workbook {
	w := &Workbook{}
	w.Add(TableSheet(SheetIntegration, t.Integration))
	if t.Ratios != nil {
		w.Add(TableSheet(SheetRatios, t.Ratios))
	}
	if t.Math != nil {
		w.Add(TableSheet(SheetMath, t.Math))
	}
	if t.Pairwise != nil {
		w.Add(TableSheet(SheetPairwise, t.Pairwise))
	}
	if len(t.Summary) > 0 {
		w.Add(SummarySheet(SheetSummary, t.Summary))
	}
	return w
}

// Add appends a sheet.
func (w *Workbook) Add(s Sheet) { w.Sheets = append(w.Sheets, s) }

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	f, err := w.build()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: saving %s: %w", path, err)
	}
	return nil
}

// WriteTo writes the workbook in xlsx format.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	f, err := w.build()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.WriteTo(out)
}

func (w *Workbook) build() (*excelize.File, error) {
	if len(w.Sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("export: %w", err)
	}

	for i, s := range w.Sheets {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err == nil {
			err = writeSheet(f, s, bold)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("export: sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	sw, err := f.NewStreamWriter(s.Name)
	if err != nil {
		return err
	}
	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	if len(s.Header) > 0 {
		if err := sw.SetColWidth(1, len(s.Header), 14); err != nil {
			return err
		}
	}

	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return err
	}
	for r, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(row)); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func cells(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			continue
		}
		out[i] = v
	}
	return out
}
