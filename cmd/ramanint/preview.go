package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-raman/internal/logger"
	"github.com/cwbudde/algo-raman/pipeline"
)

// PreviewCmd draws the raw traces of each input without measuring.
type PreviewCmd struct {
	Inputs    []string `arg:"" help:"Spectrum files or directories"`
	Recursive bool     `short:"R" help:"Descend into subdirectories"`
	PlotDir   string   `help:"Directory for figures" default:"."`
	MaxTraces int      `help:"Pixels drawn per map figure, 0 for all" default:"-1"`
}

func (c *PreviewCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, nil)
	if err != nil {
		return err
	}
	if c.MaxTraces >= 0 {
		cfg.MaxTraces = c.MaxTraces
	}
	paths, err := pipeline.Resolve(c.Inputs, c.Recursive)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.PlotDir, 0o755); err != nil {
		return fmt.Errorf("plot dir: %w", err)
	}

	s := newSession(cfg, os.Stdout)
	var failed int
	for _, path := range paths {
		set, status, err := s.driver.Load(path)
		switch status {
		case pipeline.StatusSkipped:
			logger.Infof("skipping %s", path)
			continue
		case pipeline.StatusFailed:
			logger.Errorf("%s: %v", path, err)
			failed++
			continue
		}
		fig, err := s.renderer.Preview(path, set)
		if err != nil {
			return err
		}
		out, err := fig.Save(c.PlotDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s -> %s\n", path, out)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}
