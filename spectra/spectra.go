package spectra

import (
	"errors"
	"fmt"
)

// ErrInvalidSet is returned by [Set.Validate] for structurally broken sets.
var ErrInvalidSet = errors.New("spectra: invalid spectrum set")

// Spectrum is one wavenumber/intensity curve. Wavenumbers need not be sorted.
type Spectrum struct {
	Wavenumber []float64
	Intensity  []float64
}

// Len returns the number of points.
func (s Spectrum) Len() int { return len(s.Wavenumber) }

// Coordinate is the spatial position of one map pixel (1 to 3 axes).
type Coordinate []float64

// Set is an ordered collection of spectra sharing one wavenumber axis.
//
// Coordinates is either empty or parallel to Spectra.
type Set struct {
	Spectra     []Spectrum
	Coordinates []Coordinate
}

// NewSingle wraps one spectrum into a Set without coordinates.
func NewSingle(wavenumber, intensity []float64) *Set {
	return &Set{Spectra: []Spectrum{{Wavenumber: wavenumber, Intensity: intensity}}}
}

// Len returns the number of pixels.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Spectra)
}

// Empty reports whether the set holds no spectra.
func (s *Set) Empty() bool { return s.Len() == 0 }

// IsMap reports whether the set carries per-pixel coordinates.
func (s *Set) IsMap() bool { return s != nil && len(s.Coordinates) > 0 }

// Axis returns the shared wavenumber axis (that of the first pixel).
func (s *Set) Axis() []float64 {
	if s.Empty() {
		return nil
	}
	return s.Spectra[0].Wavenumber
}

// Intensities returns the per-pixel intensity slices in pixel order.
// The returned slices alias the set's storage.
func (s *Set) Intensities() [][]float64 {
	if s.Empty() {
		return nil
	}
	out := make([][]float64, len(s.Spectra))
	for i, sp := range s.Spectra {
		out[i] = sp.Intensity
	}
	return out
}

// Dimensions returns the number of coordinate axes, or 0 for non-map sets.
func (s *Set) Dimensions() int {
	if !s.IsMap() {
		return 0
	}
	return len(s.Coordinates[0])
}

// Validate checks the structural invariants of the set.
func (s *Set) Validate() error {
	if s.Empty() {
		return nil
	}
	if len(s.Coordinates) != 0 && len(s.Coordinates) != len(s.Spectra) {
		return fmt.Errorf("%w: %d coordinates for %d spectra", ErrInvalidSet, len(s.Coordinates), len(s.Spectra))
	}
	n := s.Spectra[0].Len()
	for i, sp := range s.Spectra {
		if len(sp.Intensity) != len(sp.Wavenumber) {
			return fmt.Errorf("%w: spectrum %d has %d wavenumbers and %d intensities",
				ErrInvalidSet, i, len(sp.Wavenumber), len(sp.Intensity))
		}
		if sp.Len() != n {
			return fmt.Errorf("%w: spectrum %d has %d points, want %d", ErrInvalidSet, i, sp.Len(), n)
		}
	}
	if len(s.Coordinates) > 0 {
		dim := len(s.Coordinates[0])
		for i, c := range s.Coordinates {
			if len(c) != dim {
				return fmt.Errorf("%w: coordinate %d has %d axes, want %d", ErrInvalidSet, i, len(c), dim)
			}
		}
	}
	return nil
}
