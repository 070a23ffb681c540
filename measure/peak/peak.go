package peak

import (
	"math"

	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-vecmath"
)

// HalfWidth is the number of samples taken on each side of the nearest
// sample.
const HalfWidth = 3

// minSpan guards the baseline factor for single-sample windows.
const minSpan = 1e-9

// Marker is the measurement of one target over every pixel of a set.
type Marker struct {
	Target     float64
	Index      int // nearest sample, -1 if the set has no samples
	Lo, Hi     int // window is axis[Lo:Hi]
	Wavenumber []float64
	Baseline   [][]float64 // per pixel, aligned with Wavenumber
	Heights    []float64   // per pixel
	ArgMax     []int       // per pixel, absolute sample index of the height
}

// Result holds one Marker per target, in request order.
type Result struct {
	Markers []Marker
}

// Heights returns the per-pixel heights for target, or nil if the target was
// not measured.
func (res Result) Heights(target float64) []float64 {
	for _, m := range res.Markers {
		if m.Target == target {
			return m.Heights
		}
	}
	return nil
}

// Extract measures every target independently over all pixels of set.
func Extract(set *spectra.Set, targets []float64) Result {
	res := Result{Markers: make([]Marker, 0, len(targets))}
	for _, t := range targets {
		res.Markers = append(res.Markers, ExtractTarget(set, t))
	}
	return res
}

// ExtractTarget measures one target. All pixels share the axis of the first
// spectrum.
func ExtractTarget(set *spectra.Set, target float64) Marker {
	pixels := set.Len()
	m := Marker{Target: target, Index: -1}
	if pixels == 0 {
		return m
	}
	m.Heights = make([]float64, pixels)
	m.ArgMax = make([]int, pixels)

	axis := set.Axis()
	m.Index = Nearest(axis, target)
	if m.Index < 0 {
		for p := range m.Heights {
			m.Heights[p] = math.NaN()
			m.ArgMax[p] = -1
		}
		return m
	}

	m.Lo = max(m.Index-HalfWidth, 0)
	m.Hi = min(m.Index+HalfWidth+1, len(axis))
	m.Wavenumber = append([]float64(nil), axis[m.Lo:m.Hi]...)

	n := len(m.Wavenumber)
	span := max(m.Wavenumber[n-1]-m.Wavenumber[0], minSpan)
	trail := make([]float64, n)
	lead := make([]float64, n)
	for i, w := range m.Wavenumber {
		trail[i] = (w - m.Wavenumber[0]) / span
		lead[i] = 1 - trail[i]
	}

	m.Baseline = make([][]float64, pixels)
	scratch := make([]float64, n)
	diff := make([]float64, n)
	for p, sp := range set.Spectra {
		in := sp.Intensity[m.Lo:m.Hi]
		base := make([]float64, n)
		vecmath.ScaleBlock(base, lead, in[0])
		vecmath.ScaleBlock(scratch, trail, in[n-1])
		vecmath.AddBlockInPlace(base, scratch)

		vecmath.ScaleBlock(scratch, base, -1)
		vecmath.AddBlock(diff, in, scratch)

		best := 0
		for i := 1; i < n; i++ {
			if diff[i] > diff[best] {
				best = i
			}
		}
		m.Baseline[p] = base
		m.Heights[p] = diff[best]
		m.ArgMax[p] = m.Lo + best
	}
	return m
}

// Nearest returns the index of the sample closest to target, the lowest
// index on ties, or -1 for an empty axis.
func Nearest(axis []float64, target float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, w := range axis {
		if d := math.Abs(w - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

