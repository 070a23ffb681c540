package main

import (
	"fmt"

	"github.com/cwbudde/algo-raman/internal/config"
)

// InitCmd writes a run file holding the effective settings.
type InitCmd struct {
	Path   string   `arg:"" optional:"" help:"Run file to create" default:"ramanint.yaml"`
	Input  []string `short:"i" help:"Spectrum files or directories"`
	Ranges string   `short:"r" help:"Integration ranges, \"min,max; min,max\""`
	Peaks  string   `short:"p" help:"Peak positions, \"p1; p2\""`
}

func (c *InitCmd) Run(g *Globals) error {
	f := MeasureFlags{Inputs: c.Input, Ranges: c.Ranges, Peaks: c.Peaks, MaxTraces: -1}
	cfg, err := loadConfig(g, &f)
	if err != nil {
		return err
	}
	if err := config.Write(c.Path, cfg); err != nil {
		return err
	}
	fmt.Printf("Created: %s\n", c.Path)
	return nil
}
