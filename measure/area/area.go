package area

import (
	"cmp"
	"slices"

	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-vecmath"
)

// Region is the integration of one range over every pixel of a set. Besides
// the areas it keeps the sorted sub-axis, intensities and baselines so a
// renderer can draw what was integrated.
type Region struct {
	Range      spectra.Range
	Wavenumber []float64   // selected wavenumbers, ascending
	Intensity  [][]float64 // per pixel, aligned with Wavenumber
	Baseline   [][]float64 // per pixel, aligned with Wavenumber
	Areas      []float64   // per pixel, >= 0
}

// Empty reports whether the range selected no samples.
func (r Region) Empty() bool { return len(r.Wavenumber) == 0 }

// Result holds one Region per requested range, in request order.
type Result struct {
	Regions []Region
}

// Areas returns the per-pixel areas for r, or nil if r was not integrated.
func (res Result) Areas(r spectra.Range) []float64 {
	for _, reg := range res.Regions {
		if reg.Range == r {
			return reg.Areas
		}
	}
	return nil
}

// Integrate integrates every range independently over all pixels of set.
func Integrate(set *spectra.Set, ranges []spectra.Range) Result {
	res := Result{Regions: make([]Region, 0, len(ranges))}
	for _, r := range ranges {
		res.Regions = append(res.Regions, IntegrateRange(set, r))
	}
	return res
}

// IntegrateRange integrates a single range. All pixels are assumed to share
// the axis of the first spectrum. Invalid ranges yield zero areas.
func IntegrateRange(set *spectra.Set, r spectra.Range) Region {
	pixels := set.Len()
	reg := Region{Range: r, Areas: make([]float64, pixels)}
	if pixels == 0 || r.Validate() != nil {
		return reg
	}

	order := selectSorted(set.Axis(), r)
	if len(order) == 0 {
		return reg
	}

	axis := set.Axis()
	n := len(order)
	reg.Wavenumber = make([]float64, n)
	for i, idx := range order {
		reg.Wavenumber[i] = axis[idx]
	}

	// Baseline weights: baseline = I0*lead + I1*trail.
	trail := make([]float64, n)
	lead := make([]float64, n)
	width := r.Width()
	for i, w := range reg.Wavenumber {
		trail[i] = (w - r.Min) / width
		lead[i] = 1 - trail[i]
	}

	var dx []float64
	if n > 1 {
		dx = make([]float64, n-1)
		for i := range dx {
			dx[i] = reg.Wavenumber[i+1] - reg.Wavenumber[i]
		}
	}

	reg.Intensity = make([][]float64, pixels)
	reg.Baseline = make([][]float64, pixels)
	scratch := make([]float64, n)
	signal := make([]float64, n)
	var pairs []float64
	if n > 1 {
		pairs = make([]float64, n-1)
	}

	for p, sp := range set.Spectra {
		in := make([]float64, n)
		for i, idx := range order {
			in[i] = sp.Intensity[idx]
		}
		base := make([]float64, n)
		vecmath.ScaleBlock(base, lead, in[0])
		vecmath.ScaleBlock(scratch, trail, in[n-1])
		vecmath.AddBlockInPlace(base, scratch)

		vecmath.ScaleBlock(scratch, base, -1)
		vecmath.AddBlock(signal, in, scratch)

		reg.Intensity[p] = in
		reg.Baseline[p] = base
		if n > 1 {
			reg.Areas[p] = clamp(trapezoid(signal, dx, pairs))
		}
	}
	return reg
}

// selectSorted returns the indices of axis inside r, ordered by wavenumber.
// Equal wavenumbers keep their file order.
func selectSorted(axis []float64, r spectra.Range) []int {
	var idx []int
	for i, w := range axis {
		if r.Contains(w) {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(axis[a], axis[b])
	})
	return idx
}

// trapezoid integrates y over sample spacings dx. pairs is scratch space of
// len(dx).
func trapezoid(y, dx, pairs []float64) float64 {
	vecmath.AddBlock(pairs, y[:len(y)-1], y[1:])
	return 0.5 * vecmath.DotProduct(dx, pairs)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
