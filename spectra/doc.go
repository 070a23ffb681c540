// Package spectra defines the data model shared by the readers, the
// measurement packages and the table assembler.
//
// A [Set] holds one or more [Spectrum] values ("pixels") that share a single
// wavenumber axis, plus an optional parallel list of [Coordinate] tuples for
// map files. A [Range] is a closed wavenumber interval used both as an
// integration filter and, through [Range.Label], as a table column key.
//
// # Parameter strings
//
// Ranges, peak positions and expressions are exchanged as semicolon-separated
// strings:
//
//	ranges, err := spectra.ParseRanges("400,600; 1000,1100")
//	peaks, err := spectra.ParsePeaks("1001; 1600.5")
//	exprs := spectra.SplitExpressions("1/2; 3/1")
package spectra
