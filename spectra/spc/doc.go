// Package spc decodes Galactic/Thermo SPC spectrum containers.
//
// Only the "new" little-endian layout (version byte 0x4B) is supported. The
// decoder understands evenly spaced and explicit X axes, per-subfile X arrays
// (XYXY files), IEEE float Y data and the scaled 16/32-bit integer Y
// encodings. [File.Text] renders the first subfile as the two-column
// "wavenumber intensity" text that the rest of the toolkit parses.
package spc
