// Package area integrates baseline-corrected band areas over wavenumber
// ranges.
//
// For each range and pixel the samples with Min <= w <= Max are selected and
// sorted by wavenumber. A straight baseline runs from the first to the last
// selected intensity, parameterized over the requested bounds:
//
//	baseline(w) = I0 + (I1 - I0) * (w - Min) / (Max - Min)
//
// The trapezoidal integral of intensity minus baseline is clamped at zero,
// so areas are never negative. A range that selects no samples integrates to
// zero for every pixel.
//
// # Usage
//
//	ranges, _ := spectra.ParseRanges("990,1010; 1590,1610")
//	res := area.Integrate(set, ranges)
//	for _, reg := range res.Regions {
//		fmt.Println(reg.Range.Label(), reg.Areas)
//	}
package area
