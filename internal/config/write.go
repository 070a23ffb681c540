package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-raman/spectra"
)

// document is the on-disk layout written by Write. Ranges and peaks use the
// compact string forms so the file reads like the command-line flags.
type document struct {
	Inputs         []string `yaml:"inputs"`
	Recursive      bool     `yaml:"recursive"`
	Ranges         string   `yaml:"ranges"`
	Peaks          string   `yaml:"peaks"`
	Ratios         []string `yaml:"ratios"`
	Formulas       []string `yaml:"formulas"`
	PairwiseRatios bool     `yaml:"pairwise_ratios"`
	Output         string   `yaml:"output"`
	PlotDir        string   `yaml:"plot_dir"`
	PlotWidth      float64  `yaml:"plot_width"`
	PlotHeight     float64  `yaml:"plot_height"`
	MaxTraces      int      `yaml:"max_traces"`
	Workers        int      `yaml:"workers"`
	LogLevel       string   `yaml:"log_level"`
}

// Marshal renders cfg as YAML that Load reads back unchanged.
func Marshal(cfg *Config) ([]byte, error) {
	doc := document{
		Inputs:         cfg.Inputs,
		Recursive:      cfg.Recursive,
		Ranges:         FormatRanges(cfg.Ranges),
		Peaks:          FormatPeaks(cfg.Peaks),
		Ratios:         cfg.Ratios,
		Formulas:       cfg.Formulas,
		PairwiseRatios: cfg.PairwiseRatios,
		Output:         cfg.Output,
		PlotDir:        cfg.PlotDir,
		PlotWidth:      cfg.PlotWidth,
		PlotHeight:     cfg.PlotHeight,
		MaxTraces:      cfg.MaxTraces,
		Workers:        cfg.Workers,
		LogLevel:       cfg.LogLevel,
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return out, nil
}

// Write saves cfg to path as YAML. Existing files are not overwritten.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("config: %w", err)
	}
	return f.Close()
}

// FormatRanges renders ranges in the "min,max; min,max" form.
func FormatRanges(ranges []spectra.Range) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = formatFloat(r.Min) + "," + formatFloat(r.Max)
	}
	return strings.Join(parts, "; ")
}

// FormatPeaks renders peaks in the "p1; p2" form.
func FormatPeaks(peaks []float64) string {
	parts := make([]string, len(peaks))
	for i, p := range peaks {
		parts[i] = formatFloat(p)
	}
	return strings.Join(parts, "; ")
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
