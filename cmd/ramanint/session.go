package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-raman/export"
	"github.com/cwbudde/algo-raman/internal/cache"
	"github.com/cwbudde/algo-raman/internal/config"
	"github.com/cwbudde/algo-raman/internal/logger"
	"github.com/cwbudde/algo-raman/pipeline"
	"github.com/cwbudde/algo-raman/render"
	"github.com/cwbudde/algo-raman/spectra"
)

// session owns the caches shared by consecutive runs of one process.
type session struct {
	cfg      *config.Config
	spectra  *cache.Cache[string, *spectra.Set]
	renderer *render.Renderer
	driver   *pipeline.Driver
	out      io.Writer
}

func newSession(cfg *config.Config, out io.Writer) *session {
	s := &session{
		cfg:     cfg,
		spectra: cache.New[string, *spectra.Set](0),
		out:     out,
	}
	s.renderer = render.NewRenderer(nil, renderOptions(cfg))
	s.driver = pipeline.NewDriver(
		pipeline.WithSpectraCache(s.spectra),
		pipeline.WithLogger(logger.With(slog.String("component", "pipeline"))),
		pipeline.WithInvalidator(s.renderer),
	)
	return s
}

func renderOptions(cfg *config.Config) render.Options {
	return render.Options{
		Width:     vg.Length(cfg.PlotWidth) * vg.Inch,
		Height:    vg.Length(cfg.PlotHeight) * vg.Inch,
		Format:    "png",
		MaxTraces: cfg.MaxTraces,
	}
}

// run resolves the inputs, measures them, writes the workbook and figures
// and prints the summary table.
func (s *session) run(ctx context.Context) (*pipeline.Report, error) {
	params := s.cfg.Params()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	paths, err := pipeline.Resolve(s.cfg.Inputs, s.cfg.Recursive)
	if err != nil {
		return nil, err
	}
	rep, err := s.driver.Run(paths, params)
	if err != nil {
		return nil, err
	}

	tables := rep.Tables()
	for _, ferr := range tables.FormulaErrors {
		logger.Warnf("%v", ferr)
	}
	if s.cfg.Output != "" {
		if err := export.FromTables(tables).Save(s.cfg.Output); err != nil {
			return rep, err
		}
		logger.Infof("wrote %s", s.cfg.Output)
	}
	if s.cfg.PlotDir != "" {
		if err := s.savePlots(ctx, rep.OK()); err != nil {
			return rep, err
		}
	}
	if err := printSummary(s.out, rep); err != nil {
		return rep, err
	}
	return rep, nil
}

// savePlots draws and writes one figure per result with at most
// cfg.Workers writers in flight.
func (s *session) savePlots(ctx context.Context, results []*pipeline.FileResult) error {
	if err := os.MkdirAll(s.cfg.PlotDir, 0o755); err != nil {
		return fmt.Errorf("plot dir: %w", err)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for _, res := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fig, err := s.renderer.Render(res)
			if errors.Is(err, render.ErrNoData) {
				return nil
			}
			if err != nil {
				return err
			}
			path, err := fig.Save(s.cfg.PlotDir)
			if err != nil {
				return err
			}
			logger.Debugf("figure %s", path)
			return nil
		})
	}
	return g.Wait()
}

// RunCmd measures the inputs once.
type RunCmd struct {
	MeasureFlags
}

func (c *RunCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, &c.MeasureFlags)
	if err != nil {
		return err
	}
	rep, err := newSession(cfg, os.Stdout).run(context.Background())
	if err != nil {
		return err
	}
	if _, _, failed := rep.Counts(); failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}
