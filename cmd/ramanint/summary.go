package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/cwbudde/algo-raman/pipeline"
)

// printSummary writes one row per file: status, pixel count and the mean
// area of every range. Failed files are listed with their error below.
func printSummary(w io.Writer, rep *pipeline.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	head := []string{"File", "Status", "Pixels"}
	head = append(head, rep.Params.RangeColumns()...)
	head = append(head, rep.Params.PeakColumns()...)
	rule := make([]string, len(head))
	for i, h := range head {
		rule[i] = strings.Repeat("-", len([]rune(h)))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(head, "\t")); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(rule, "\t")); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, res := range rep.Files {
		row := []string{res.Name, res.Status.String()}
		if res.Status != pipeline.StatusOK {
			row = append(row, "-")
			for range len(head) - len(row) {
				row = append(row, "-")
			}
		} else {
			row = append(row, fmt.Sprint(res.Set.Len()))
			for _, r := range rep.Params.Ranges {
				row = append(row, mean(res.Areas.Areas(r)))
			}
			for _, p := range rep.Params.Peaks {
				row = append(row, mean(res.Peaks.Heights(p)))
			}
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	ok, skipped, failed := rep.Counts()
	if _, err := fmt.Fprintf(w, "\n%d ok, %d skipped, %d failed in %s\n", ok, skipped, failed, rep.Elapsed.Round(time.Millisecond)); err != nil {
		return err
	}
	for _, res := range rep.Failed() {
		if _, err := fmt.Fprintf(w, "error: %s: %v\n", res.Name, res.Err); err != nil {
			return err
		}
	}
	return nil
}

// mean formats the pixel average of values.
func mean(values []float64) string {
	m, err := stats.Mean(stats.Float64Data(values))
	if err != nil || math.IsNaN(m) {
		return "-"
	}
	return fmt.Sprintf("%.4g", m)
}
