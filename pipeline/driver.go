package pipeline

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-raman/internal/cache"
	"github.com/cwbudde/algo-raman/measure/area"
	"github.com/cwbudde/algo-raman/measure/peak"
	"github.com/cwbudde/algo-raman/spectra"
	"github.com/cwbudde/algo-raman/spectra/specfile"
)

// Driver runs batches. It is safe to reuse across runs; concurrent Run
// calls share the caches but are otherwise independent.
type Driver struct {
	cfg    DriverConfig
	reader *specfile.Reader
}

// NewDriver creates a driver.
func NewDriver(opts ...DriverOption) *Driver {
	cfg := ApplyDriverOptions(opts...)
	return &Driver{cfg: cfg, reader: specfile.NewReader(cfg.Spectra)}
}

// InvalidateAll clears the spectra cache and every registered invalidator.
func (d *Driver) InvalidateAll() {
	d.cfg.Spectra.InvalidateAll()
	for _, inv := range d.cfg.Invalidators {
		inv.InvalidateAll()
	}
}

// Load reads path through the cache and classifies the outcome.
func (d *Driver) Load(path string) (*spectra.Set, Status, error) {
	set, err := d.reader.Read(path)
	switch {
	case err != nil:
		return nil, StatusFailed, err
	case set.Empty():
		return set, StatusSkipped, nil
	}
	if err := set.Validate(); err != nil {
		return nil, StatusFailed, err
	}
	return set, StatusOK, nil
}

// Process measures a single file. p is assumed valid.
func (d *Driver) Process(path string, p Params) *FileResult {
	res := &FileResult{Path: path, Name: filepath.Base(path)}
	res.Set, res.Status, res.Err = d.Load(path)
	if res.Status != StatusOK {
		return res
	}
	res.Areas = area.Integrate(res.Set, p.Ranges)
	res.Peaks = peak.Extract(res.Set, p.Peaks)
	return res
}

// Run validates p and processes paths in order. Only parameter errors are
// returned; per-file errors are recorded in the report.
func (d *Driver) Run(paths []string, p Params) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rep := &Report{RunID: uuid.NewString(), Params: p, Started: time.Now()}
	log := d.cfg.Logger.With(slog.String("run", rep.RunID))
	log.Info("run started", slog.Int("files", len(paths)), slog.Int("ranges", len(p.Ranges)), slog.Int("peaks", len(p.Peaks)))

	for _, path := range paths {
		res := d.Process(path, p)
		rep.Files = append(rep.Files, res)

		switch res.Status {
		case StatusOK:
			log.Debug("file processed", slog.String("path", path), slog.Int("pixels", res.Set.Len()))
		case StatusSkipped:
			log.Info("file skipped", slog.String("path", path))
		case StatusFailed:
			attrs := []any{slog.String("path", path), slog.Any("err", res.Err)}
			var fe *specfile.FormatError
			if errors.As(res.Err, &fe) && fe.Line > 0 {
				attrs = append(attrs, slog.Int("line", fe.Line))
			}
			log.Warn("file failed", attrs...)
		}
	}

	rep.Elapsed = time.Since(rep.Started)
	ok, skipped, failed := rep.Counts()
	log.Info("run finished", slog.Int("ok", ok), slog.Int("skipped", skipped), slog.Int("failed", failed),
		slog.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

var _ cache.Invalidator = (*Driver)(nil)
