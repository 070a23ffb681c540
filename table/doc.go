// Package table assembles per-file measurements into wide result tables.
//
// [Build] produces one row per pixel of every map file and one row per
// single-spectrum file, keyed by filename, spectrum number and coordinates.
// [Ratios] and [Evaluate] derive further tables that share those keys, and
// [Summarize] reduces columns to descriptive statistics.
//
// Missing values are NaN. Exporters write them as blank cells.
package table
