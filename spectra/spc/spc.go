package spc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Errors returned by Decode.
var (
	ErrFormat             = errors.New("spc: malformed file")
	ErrUnsupportedVersion = errors.New("spc: unsupported file version")
)

// Header flag bits (ftflgs).
const (
	FlagShortY     = 0x01 // Y stored as 16-bit integers
	FlagChromGram  = 0x02
	FlagMulti      = 0x04 // more than one subfile
	FlagRandomZ    = 0x08
	FlagOrderedZ   = 0x10
	FlagAxisLabels = 0x20
	FlagXYXY       = 0x40 // every subfile carries its own X array
	FlagXValues    = 0x80 // explicit X array follows the header
)

const (
	versionNew = 0x4B

	headerSize    = 512
	subheaderSize = 32

	// floatExponent marks IEEE float32 Y data.
	floatExponent = -128
)

// Header holds the fields of the 512-byte main header used for decoding.
type Header struct {
	Flags      byte
	Version    byte
	Experiment byte
	Exponent   int8
	Points     uint32
	First      float64
	Last       float64
	Subfiles   uint32
	XUnits     byte
	YUnits     byte
	ZUnits     byte
	Comment    string
}

// Subfile is one decoded trace.
type Subfile struct {
	Index uint16
	Z     float32
	X     []float64
	Y     []float64
}

// File is a decoded SPC container.
type File struct {
	Header   Header
	Subfiles []Subfile
}

// Decode parses an in-memory SPC container.
func Decode(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d-byte header", ErrFormat, len(data), headerSize)
	}
	h := parseHeader(data[:headerSize])
	if h.Version != versionNew {
		return nil, fmt.Errorf("%w: version byte 0x%02X", ErrUnsupportedVersion, h.Version)
	}

	d := decoder{data: data, pos: headerSize}
	f := &File{Header: h}

	var sharedX []float64
	switch {
	case h.Flags&FlagXYXY != 0:
		// X arrays live in each subfile.
	case h.Flags&FlagXValues != 0:
		xs, err := d.float32s(int(h.Points))
		if err != nil {
			return nil, fmt.Errorf("reading X values: %w", err)
		}
		sharedX = xs
	default:
		if h.Points == 0 {
			return nil, fmt.Errorf("%w: header declares zero points", ErrFormat)
		}
		sharedX = evenAxis(h.First, h.Last, int(h.Points))
	}

	n := int(h.Subfiles)
	if h.Flags&FlagMulti == 0 || n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		sub, err := d.subfile(h, sharedX)
		if err != nil {
			return nil, fmt.Errorf("subfile %d: %w", i, err)
		}
		f.Subfiles = append(f.Subfiles, sub)
	}
	return f, nil
}

// Text renders the first subfile as tab-separated "x\ty" lines.
func (f *File) Text() string {
	if f == nil || len(f.Subfiles) == 0 {
		return ""
	}
	s := f.Subfiles[0]
	var b strings.Builder
	for i := range s.Y {
		b.WriteString(strconv.FormatFloat(s.X[i], 'g', -1, 64))
		b.WriteByte('\t')
		b.WriteString(strconv.FormatFloat(s.Y[i], 'g', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

func parseHeader(b []byte) Header {
	le := binary.LittleEndian
	return Header{
		Flags:      b[0],
		Version:    b[1],
		Experiment: b[2],
		Exponent:   int8(b[3]),
		Points:     le.Uint32(b[4:8]),
		First:      math.Float64frombits(le.Uint64(b[8:16])),
		Last:       math.Float64frombits(le.Uint64(b[16:24])),
		Subfiles:   le.Uint32(b[24:28]),
		XUnits:     b[28],
		YUnits:     b[29],
		ZUnits:     b[30],
		Comment:    cString(b[88:218]),
	}
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return strings.TrimSpace(string(b[:i]))
		}
	}
	return strings.TrimSpace(string(b))
}

func evenAxis(first, last float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = first
		return out
	}
	step := (last - first) / float64(n-1)
	for i := range out {
		out[i] = first + step*float64(i)
	}
	return out
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, file has %d", ErrFormat, n, d.pos, len(d.data))
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) float32s(n int) ([]float64, error) {
	b, err := d.take(4 * n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])))
	}
	return out, nil
}

func (d *decoder) subfile(h Header, sharedX []float64) (Subfile, error) {
	sh, err := d.take(subheaderSize)
	if err != nil {
		return Subfile{}, err
	}
	le := binary.LittleEndian
	sub := Subfile{
		Index: le.Uint16(sh[2:4]),
		Z:     math.Float32frombits(le.Uint32(sh[4:8])),
	}

	exp := h.Exponent
	if h.Flags&FlagMulti != 0 {
		exp = int8(sh[1])
	}

	points := int(h.Points)
	if h.Flags&FlagXYXY != 0 {
		points = int(le.Uint32(sh[16:20]))
		if sub.X, err = d.float32s(points); err != nil {
			return Subfile{}, fmt.Errorf("reading X values: %w", err)
		}
	} else {
		sub.X = sharedX
	}
	if points == 0 {
		return Subfile{}, fmt.Errorf("%w: subfile has zero points", ErrFormat)
	}

	switch {
	case exp == floatExponent:
		sub.Y, err = d.float32s(points)
	case h.Flags&FlagShortY != 0:
		sub.Y, err = d.scaledInt16(points, exp)
	default:
		sub.Y, err = d.scaledInt32(points, exp)
	}
	if err != nil {
		return Subfile{}, fmt.Errorf("reading Y values: %w", err)
	}
	return sub, nil
}

func (d *decoder) scaledInt32(n int, exp int8) ([]float64, error) {
	b, err := d.take(4 * n)
	if err != nil {
		return nil, err
	}
	scale := math.Ldexp(1, int(exp)-32)
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(int32(binary.LittleEndian.Uint32(b[4*i:]))) * scale
	}
	return out, nil
}

func (d *decoder) scaledInt16(n int, exp int8) ([]float64, error) {
	b, err := d.take(2 * n)
	if err != nil {
		return nil, err
	}
	scale := math.Ldexp(1, int(exp)-16)
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(int16(binary.LittleEndian.Uint16(b[2*i:]))) * scale
	}
	return out, nil
}
