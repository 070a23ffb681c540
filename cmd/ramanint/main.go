// Command ramanint integrates Raman spectra over wavenumber ranges and
// exports the results as an xlsx workbook with optional figures.
//
// Usage:
//
//	ramanint [--config FILE] [--log-level LEVEL] <command> [flags]
//
// Examples:
//
//	ramanint run data/ --ranges "950,1050; 1590,1610" --peaks 1001
//	ramanint run data/ -r "950,1050; 1590,1610" --ratios "1/2" --plot-dir plots
//	ramanint preview sample.spc --plot-dir plots
//	ramanint watch data/ --config ramanint.yaml
//	ramanint init ramanint.yaml --ranges "950,1050"
//
// Settings are taken from the run file, then RAMANINT_* environment
// variables, then flags.
package main

import (
	"github.com/alecthomas/kong"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `name:"config" short:"c" help:"Run file (YAML, TOML or JSON)"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn, error (default from run file)"`
}

// CLI defines the command-line interface for ramanint.
var CLI struct {
	Globals

	Run     RunCmd     `cmd:"" help:"Integrate ranges, extract peaks and write the workbook"`
	Preview PreviewCmd `cmd:"" help:"Draw raw spectra without measuring"`
	Watch   WatchCmd   `cmd:"" help:"Rerun on every change below the inputs"`
	Init    InitCmd    `cmd:"" help:"Write a run file template"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ramanint"),
		kong.Description("Raman spectrum range integration"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
