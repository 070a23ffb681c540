package specfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-raman/spectra"
)

// maxLineSize bounds a single text line. Map rows for large axes easily
// exceed bufio's 64 KiB default.
const maxLineSize = 64 << 20

type line struct {
	num    int
	fields []string
}

// ParseText parses a text spectrum file. name is only used in errors.
func ParseText(r io.Reader, name string) (*spectra.Set, error) {
	lines, err := readLines(r, name)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &FormatError{Path: name, Msg: "file contains no data"}
	}
	if len(lines[0].fields) <= 2 {
		return parseSingle(lines, name)
	}
	return parseMap(lines, name)
}

func readLines(r io.Reader, name string) ([]line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var out []line
	n := 0
	for sc.Scan() {
		n++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		out = append(out, line{num: n, fields: fields})
	}
	if err := sc.Err(); err != nil {
		return nil, &FormatError{Path: name, Line: n + 1, Msg: "reading line", Err: err}
	}
	return out, nil
}

func parseSingle(lines []line, name string) (*spectra.Set, error) {
	wn := make([]float64, 0, len(lines))
	in := make([]float64, 0, len(lines))
	for _, l := range lines {
		if len(l.fields) != 2 {
			return nil, &FormatError{Path: name, Line: l.num,
				Msg: fmt.Sprintf("expected 2 columns, found %d", len(l.fields))}
		}
		w, err := parseValue(l.fields[0], name, l.num)
		if err != nil {
			return nil, err
		}
		v, err := parseValue(l.fields[1], name, l.num)
		if err != nil {
			return nil, err
		}
		wn = append(wn, w)
		in = append(in, v)
	}
	return spectra.NewSingle(wn, in), nil
}

func parseMap(lines []line, name string) (*spectra.Set, error) {
	head := lines[0]
	axis, err := parseValues(head.fields, name, head.num)
	if err != nil {
		return nil, err
	}
	rows := lines[1:]
	if len(rows) == 0 {
		return nil, &FormatError{Path: name, Line: head.num, Msg: "map file has an axis but no spectra"}
	}

	n := len(axis)
	coordCols := -1
	set := &spectra.Set{Spectra: make([]spectra.Spectrum, 0, len(rows))}
	for _, l := range rows {
		c := len(l.fields) - n
		if c < 0 {
			return nil, &FormatError{Path: name, Line: l.num,
				Msg: fmt.Sprintf("row has %d columns, axis has %d", len(l.fields), n)}
		}
		if coordCols < 0 {
			coordCols = c
		} else if c != coordCols {
			return nil, &FormatError{Path: name, Line: l.num,
				Msg: fmt.Sprintf("row has %d coordinate columns, previous rows have %d", c, coordCols)}
		}
		values, err := parseValues(l.fields, name, l.num)
		if err != nil {
			return nil, err
		}
		set.Spectra = append(set.Spectra, spectra.Spectrum{Wavenumber: axis, Intensity: values[c:]})
		if c > 0 {
			set.Coordinates = append(set.Coordinates, spectra.Coordinate(values[:c:c]))
		}
	}
	return set, nil
}

func parseValues(fields []string, name string, num int) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseValue(f, name, num)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseValue(tok, name string, num int) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &FormatError{Path: name, Line: num, Msg: fmt.Sprintf("%q is not a number", tok), Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Path: name, Line: num, Msg: fmt.Sprintf("%q is not finite", tok)}
	}
	return v, nil
}
