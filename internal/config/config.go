// Package config loads run configuration from an optional YAML, TOML or
// JSON file and RAMANINT_* environment variables.
//
// Ranges may be written as a "min,max; min,max" string or as a list of
// pairs. Peaks accept "p1; p2" or a list. Ratio and formula expressions
// accept a ";"-separated string or a list.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-raman/internal/logger"
	"github.com/cwbudde/algo-raman/pipeline"
	"github.com/cwbudde/algo-raman/spectra"
)

// EnvPrefix prefixes environment overrides, e.g. RAMANINT_OUTPUT.
const EnvPrefix = "RAMANINT"

// ErrInvalid wraps configuration validation failures.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full run configuration.
type Config struct {
	Inputs         []string        `mapstructure:"inputs"`
	Recursive      bool            `mapstructure:"recursive"`
	Ranges         []spectra.Range `mapstructure:"ranges"`
	Peaks          []float64       `mapstructure:"peaks"`
	Ratios         []string        `mapstructure:"ratios"`
	Formulas       []string        `mapstructure:"formulas"`
	PairwiseRatios bool            `mapstructure:"pairwise_ratios"`

	Output     string  `mapstructure:"output"`
	PlotDir    string  `mapstructure:"plot_dir"`
	PlotWidth  float64 `mapstructure:"plot_width"`  // inches
	PlotHeight float64 `mapstructure:"plot_height"` // inches
	MaxTraces  int     `mapstructure:"max_traces"`
	Workers    int     `mapstructure:"workers"`
	LogLevel   string  `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"inputs":          []string{},
	"recursive":       false,
	"ranges":          "",
	"peaks":           "",
	"ratios":          "",
	"formulas":        "",
	"pairwise_ratios": false,
	"output":          "raman_results.xlsx",
	"plot_dir":        "",
	"plot_width":      6.0,
	"plot_height":     4.0,
	"max_traces":      50,
	"workers":         4,
	"log_level":       "info",
}

// Load reads path, if not empty, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			rangesHook,
			peaksHook,
			expressionsHook,
		)
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks output and rendering settings. Measurement parameters are
// validated by pipeline.Params when a run starts.
func (c *Config) Validate() error {
	switch {
	case c.PlotWidth <= 0 || c.PlotHeight <= 0:
		return fmt.Errorf("%w: plot size %gx%g must be positive", ErrInvalid, c.PlotWidth, c.PlotHeight)
	case c.MaxTraces < 0:
		return fmt.Errorf("%w: max_traces %d is negative", ErrInvalid, c.MaxTraces)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalid)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	if err := spectra.ValidateRanges(c.Ranges); err != nil {
		return err
	}
	return spectra.ValidatePeaks(c.Peaks)
}

// Params returns the measurement parameters of the configuration.
func (c *Config) Params() pipeline.Params {
	return pipeline.Params{
		Ranges:         c.Ranges,
		Peaks:          c.Peaks,
		Ratios:         c.Ratios,
		Formulas:       c.Formulas,
		PairwiseRatios: c.PairwiseRatios,
	}
}

var (
	rangesType  = reflect.TypeOf([]spectra.Range(nil))
	floatsType  = reflect.TypeOf([]float64(nil))
	stringsType = reflect.TypeOf([]string(nil))
)

func rangesHook(from, to reflect.Type, data any) (any, error) {
	if to != rangesType {
		return data, nil
	}
	switch val := data.(type) {
	case string:
		return spectra.ParseRanges(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			s, err := rangeItem(item)
			if err != nil {
				return nil, err
			}
			parts = append(parts, s)
		}
		return spectra.ParseRanges(strings.Join(parts, ";"))
	}
	return data, nil
}

// rangeItem accepts "min,max", [min, max] or {min: .., max: ..}.
func rangeItem(item any) (string, error) {
	switch it := item.(type) {
	case string:
		return it, nil
	case []any:
		if len(it) != 2 {
			return "", &spectra.RangeError{Input: fmt.Sprint(it), Reason: "expected [min, max]"}
		}
		lo, err := number(it[0])
		if err != nil {
			return "", err
		}
		hi, err := number(it[1])
		if err != nil {
			return "", err
		}
		return lo + "," + hi, nil
	case map[string]any:
		lo, err := number(it["min"])
		if err != nil {
			return "", err
		}
		hi, err := number(it["max"])
		if err != nil {
			return "", err
		}
		return lo + "," + hi, nil
	}
	return "", &spectra.RangeError{Input: fmt.Sprint(item), Reason: "unsupported range entry"}
}

func number(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	case string:
		return strings.TrimSpace(n), nil
	}
	return "", &spectra.RangeError{Input: fmt.Sprint(v), Reason: "bound is not a number"}
}

func peaksHook(from, to reflect.Type, data any) (any, error) {
	if to != floatsType || from.Kind() != reflect.String {
		return data, nil
	}
	return spectra.ParsePeaks(data.(string))
}

func expressionsHook(from, to reflect.Type, data any) (any, error) {
	if to != stringsType || from.Kind() != reflect.String {
		return data, nil
	}
	return spectra.SplitExpressions(data.(string)), nil
}
