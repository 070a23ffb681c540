package pipeline

import (
	"github.com/cwbudde/algo-raman/measure/area"
	"github.com/cwbudde/algo-raman/measure/peak"
	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-raman/table"
)

// Status classifies the outcome of one file.
type Status int

const (
	StatusOK      Status = iota
	StatusSkipped        // unsupported extension or no spectra
	StatusFailed         // unreadable or malformed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileResult is the outcome of one file. For OK results it also carries
// everything needed to draw the file: the spectra, the integrated regions
// and the peak markers.
type FileResult struct {
	Path   string
	Name   string // base name, used as the table key
	Status Status
	Err    error
	Set    *spectra.Set
	Areas  area.Result
	Peaks  peak.Result
}

// Source converts an OK result into a table source: range columns first,
// then peak columns.
func (r *FileResult) Source() table.Source {
	src := table.Source{Filename: r.Name, Pixels: r.Set.Len()}
	if r.Set.IsMap() && r.Set.Len() > 1 {
		src.Coordinates = r.Set.Coordinates
	}
	for _, reg := range r.Areas.Regions {
		src.Series = append(src.Series, table.Series{Name: reg.Range.Label(), Values: reg.Areas})
	}
	for _, m := range r.Peaks.Markers {
		src.Series = append(src.Series, table.Series{Name: table.PeakLabel(m.Target), Values: m.Heights})
	}
	return src
}
