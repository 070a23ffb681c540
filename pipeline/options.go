package pipeline

import (
	"log/slog"

	"github.com/cwbudde/algo-raman/internal/cache"
	"github.com/cwbudde/algo-raman/spectra"
)

// DriverConfig defines the collaborators of a Driver.
type DriverConfig struct {
	// Spectra caches parsed files by path. Nil gets a private cache.
	Spectra *cache.Cache[string, *spectra.Set]
	// Logger receives per-file records. Nil discards them.
	Logger *slog.Logger
	// Invalidators are cleared together with the spectra cache.
	Invalidators []cache.Invalidator
}

// DriverOption mutates a DriverConfig.
type DriverOption func(*DriverConfig)

// DefaultDriverConfig returns a config with a private unbounded cache and
// a discarding logger.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		Spectra: cache.New[string, *spectra.Set](0),
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// WithSpectraCache shares c between drivers or with the caller.
func WithSpectraCache(c *cache.Cache[string, *spectra.Set]) DriverOption {
	return func(cfg *DriverConfig) {
		if c != nil {
			cfg.Spectra = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DriverOption {
	return func(cfg *DriverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithInvalidator registers extra cached state, such as a figure cache,
// to be cleared by Driver.InvalidateAll.
func WithInvalidator(inv cache.Invalidator) DriverOption {
	return func(cfg *DriverConfig) {
		if inv != nil {
			cfg.Invalidators = append(cfg.Invalidators, inv)
		}
	}
}

// ApplyDriverOptions applies zero or more options to the default config.
func ApplyDriverOptions(opts ...DriverOption) DriverConfig {
	cfg := DefaultDriverConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
