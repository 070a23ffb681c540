// Package pipeline runs the integration workflow over a batch of files.
//
// A run resolves input paths ([Resolve]), validates the measurement
// parameters ([Params.Validate]), then reads, integrates and measures one
// file at a time in path order. Per-file problems never abort the batch:
// each file produces a [FileResult] tagged OK, skipped or failed, and the
// [Report] assembles the successful ones into result tables.
//
// Parsed spectra are cached by path across runs. Call
// [Driver.InvalidateAll] before a run when files may have changed.
package pipeline
