// Package peak measures baseline-corrected peak heights at target
// wavenumbers.
//
// For each target the nearest sample is located and a window of
// [HalfWidth] samples on either side is taken, clipped to the array bounds.
// A straight baseline through the window's first and last samples is
// subtracted, and the height is the maximum of the difference. Heights are
// signed: a dip below the local baseline gives a negative value.
package peak
