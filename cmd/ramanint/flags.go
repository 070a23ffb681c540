package main

import (
	"fmt"

	"github.com/cwbudde/algo-raman/internal/config"
	"github.com/cwbudde/algo-raman/internal/logger"
	"github.com/cwbudde/algo-raman/spectra"
)

// MeasureFlags override the run file. Zero values leave it untouched.
type MeasureFlags struct {
	Inputs    []string `arg:"" optional:"" help:"Spectrum files or directories"`
	Recursive bool     `short:"R" help:"Descend into subdirectories"`
	Ranges    string   `short:"r" help:"Integration ranges, \"min,max; min,max\""`
	Peaks     string   `short:"p" help:"Peak positions, \"p1; p2\""`
	Ratios    string   `help:"Ratio expressions over range columns, \"1/2; 2/1\""`
	Formulas  string   `help:"Spectral math expressions over range columns, \"1/(2+3)\""`
	Pairwise  bool     `help:"Add every range pair ratio in both directions"`
	Output    string   `short:"o" help:"Workbook path"`
	PlotDir   string   `help:"Directory for figures, empty to skip"`
	Workers   int      `help:"Concurrent figure writers"`
	MaxTraces int      `help:"Pixels drawn per map figure, 0 for all" default:"-1"`
}

// apply layers the flags over cfg and revalidates it.
func (f *MeasureFlags) apply(cfg *config.Config) error {
	if len(f.Inputs) > 0 {
		cfg.Inputs = f.Inputs
	}
	cfg.Recursive = cfg.Recursive || f.Recursive
	cfg.PairwiseRatios = cfg.PairwiseRatios || f.Pairwise

	if f.Ranges != "" {
		ranges, err := spectra.ParseRanges(f.Ranges)
		if err != nil {
			return fmt.Errorf("--ranges: %w", err)
		}
		cfg.Ranges = ranges
	}
	if f.Peaks != "" {
		peaks, err := spectra.ParsePeaks(f.Peaks)
		if err != nil {
			return fmt.Errorf("--peaks: %w", err)
		}
		cfg.Peaks = peaks
	}
	if f.Ratios != "" {
		cfg.Ratios = spectra.SplitExpressions(f.Ratios)
	}
	if f.Formulas != "" {
		cfg.Formulas = spectra.SplitExpressions(f.Formulas)
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.PlotDir != "" {
		cfg.PlotDir = f.PlotDir
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.MaxTraces >= 0 {
		cfg.MaxTraces = f.MaxTraces
	}
	return cfg.Validate()
}

// loadConfig reads the run file named by the globals, applies f and
// configures the process logger.
func loadConfig(g *Globals, f *MeasureFlags) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if f != nil {
		if err := f.apply(cfg); err != nil {
			return nil, err
		}
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
