package area

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-raman/internal/testutil"
	"github.com/cwbudde/algo-raman/spectra"
)

func TestIntegrateLinearDataHasZeroArea(t *testing.T) {
	set := spectra.NewSingle([]float64{0, 1, 2, 3, 4}, []float64{1, 2, 3, 4, 5})
	reg := IntegrateRange(set, spectra.Range{Min: 0, Max: 4})

	testutil.RequireNearlyEqual(t, "area", reg.Areas[0], 0, 1e-12)
	testutil.RequireSliceNearlyEqual(t, reg.Baseline[0], []float64{1, 2, 3, 4, 5}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, reg.Wavenumber, []float64{0, 1, 2, 3, 4}, 0)
}

func TestIntegrateGaussianBand(t *testing.T) {
	axis := testutil.Axis(900, 1, 201)
	sigma, amp := 5.0, 10.0
	set := spectra.NewSingle(axis, testutil.PeakOnBackground(axis, 1000, sigma, amp, 50, 0.02))

	reg := IntegrateRange(set, spectra.Range{Min: 950, Max: 1050})
	want := amp * sigma * math.Sqrt(2*math.Pi)
	testutil.RequireNearlyEqual(t, "area", reg.Areas[0], want, 1e-3)
}

func TestIntegrateEmptyRange(t *testing.T) {
	set := &spectra.Set{Spectra: []spectra.Spectrum{
		{Wavenumber: []float64{0, 1, 2}, Intensity: []float64{5, 6, 7}},
		{Wavenumber: []float64{0, 1, 2}, Intensity: []float64{1, 1, 1}},
	}}
	reg := IntegrateRange(set, spectra.Range{Min: 10, Max: 20})

	if !reg.Empty() {
		t.Fatalf("expected empty region, got axis %v", reg.Wavenumber)
	}
	testutil.RequireSliceNearlyEqual(t, reg.Areas, []float64{0, 0}, 0)
}

func TestIntegrateInvalidRange(t *testing.T) {
	set := spectra.NewSingle([]float64{0, 1, 2}, []float64{0, 5, 0})
	for _, r := range []spectra.Range{{Min: 2, Max: 0}, {Min: 1, Max: 1}, {Min: math.NaN(), Max: 2}} {
		reg := IntegrateRange(set, r)
		testutil.RequireSliceNearlyEqual(t, reg.Areas, []float64{0}, 0)
	}
}

func TestIntegrateClampsNegativeArea(t *testing.T) {
	axis := testutil.Axis(0, 1, 21)
	dip := testutil.Gaussian(axis, 10, 2, -4)
	reg := IntegrateRange(spectra.NewSingle(axis, dip), spectra.Range{Min: 0, Max: 20})
	if reg.Areas[0] != 0 {
		t.Fatalf("area = %v, want 0 for an absorption-like dip", reg.Areas[0])
	}
}

func TestIntegrateNoisyInputNonNegative(t *testing.T) {
	axis := testutil.Axis(0, 0.5, 400)
	set := &spectra.Set{}
	for seed := int64(1); seed <= 8; seed++ {
		in := testutil.AddNoise(testutil.Line(axis, 10, -0.01), seed, 0.5)
		set.Spectra = append(set.Spectra, spectra.Spectrum{Wavenumber: axis, Intensity: in})
	}
	ranges := []spectra.Range{{Min: 0, Max: 50}, {Min: 20.25, Max: 30.75}, {Min: 100, Max: 199.5}}
	for _, reg := range Integrate(set, ranges).Regions {
		testutil.RequireNonNegative(t, reg.Areas)
		testutil.RequireFinite(t, reg.Areas)
	}
}

func TestIntegrateUsesRequestedBounds(t *testing.T) {
	// Samples only cover [0, 5] of the requested [-5, 5], so the baseline
	// slope is taken over the full requested width.
	axis := testutil.Axis(0, 1, 11)
	set := spectra.NewSingle(axis, testutil.Line(axis, 0, -1))

	reg := IntegrateRange(set, spectra.Range{Min: -5, Max: 5})
	testutil.RequireNearlyEqual(t, "area", reg.Areas[0], 6.25, 1e-12)
	testutil.RequireSliceNearlyEqual(t, reg.Baseline[0], []float64{-2.5, -3, -3.5, -4, -4.5, -5}, 1e-12)
}

func TestIntegrateUnsortedAxis(t *testing.T) {
	axis := testutil.Axis(0, 1, 41)
	in := testutil.PeakOnBackground(axis, 20, 3, 5, 1, 0.1)
	sorted := IntegrateRange(spectra.NewSingle(axis, in), spectra.Range{Min: 5, Max: 35})

	rev := func(s []float64) []float64 {
		out := make([]float64, len(s))
		for i, v := range s {
			out[len(s)-1-i] = v
		}
		return out
	}
	reversed := IntegrateRange(spectra.NewSingle(rev(axis), rev(in)), spectra.Range{Min: 5, Max: 35})

	testutil.RequireNearlyEqual(t, "area", reversed.Areas[0], sorted.Areas[0], 1e-12)
	testutil.RequireSliceNearlyEqual(t, reversed.Wavenumber, sorted.Wavenumber, 0)
}

func TestIntegrateSingleSample(t *testing.T) {
	set := spectra.NewSingle([]float64{0, 10, 20}, []float64{1, 9, 1})
	reg := IntegrateRange(set, spectra.Range{Min: 5, Max: 15})
	if len(reg.Wavenumber) != 1 {
		t.Fatalf("selected %d samples, want 1", len(reg.Wavenumber))
	}
	testutil.RequireSliceNearlyEqual(t, reg.Areas, []float64{0}, 0)
}

func TestIntegratePreservesPixelOrder(t *testing.T) {
	axis := testutil.Axis(0, 1, 21)
	amps := []float64{1, 4, 2}
	set := &spectra.Set{}
	for _, a := range amps {
		set.Spectra = append(set.Spectra, spectra.Spectrum{Wavenumber: axis, Intensity: testutil.Gaussian(axis, 10, 2, a)})
	}

	res := Integrate(set, []spectra.Range{{Min: 0, Max: 20}})
	areas := res.Areas(spectra.Range{Min: 0, Max: 20})
	if len(areas) != 3 {
		t.Fatalf("areas = %v", areas)
	}
	for i := range amps {
		// Amplitude scales the band linearly.
		testutil.RequireNearlyEqual(t, "scaled area", areas[i]/amps[i], areas[0]/amps[0], 1e-9)
	}
	if res.Areas(spectra.Range{Min: 1, Max: 2}) != nil {
		t.Fatal("lookup of a range that was not integrated should return nil")
	}
}

func TestIntegrateEmptySet(t *testing.T) {
	res := Integrate(&spectra.Set{}, []spectra.Range{{Min: 0, Max: 1}})
	if len(res.Regions) != 1 || len(res.Regions[0].Areas) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	res = Integrate(nil, []spectra.Range{{Min: 0, Max: 1}})
	if len(res.Regions[0].Areas) != 0 {
		t.Fatal("nil set should integrate to no areas")
	}
}
