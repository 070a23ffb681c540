// Package specfile reads spectrum files from disk into [spectra.Set] values.
//
// Two formats are recognized by extension, case-insensitively:
//
//   - .txt: whitespace-separated text. A file whose first non-blank line has
//     at most two tokens is a single spectrum of (wavenumber, intensity)
//     rows. Otherwise the first line is the shared wavenumber axis of a map
//     file and every following row is "coordinates... intensities...".
//   - .spc: binary SPC containers, decoded by package spc. The first subfile
//     is read as a single spectrum.
//
// Any other extension yields an empty set and no error.
//
// A [Reader] caches parsed sets by path. Entries stay valid until
// [Reader.Invalidate] is called, even if the file changes on disk.
package specfile
