// Package render draws per-file diagnostic figures with gonum/plot.
//
// A figure shows the raw traces of a file, every integrated range as a
// dashed baseline over a shaded band, and a dashed vertical marker at each
// measured peak. Figures are cached by path in a [Renderer] and encoded on
// demand, so the shell can write PNG files or keep them in memory.
package render
