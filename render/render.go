package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-raman/internal/cache"
	"github.com/cwbudde/algo-raman/measure/area"
	"github.com/cwbudde/algo-raman/measure/peak"
	"github.com/cwbudde/algo-raman/pipeline"
	"github.com/cwbudde/algo-raman/spectra"
)

// ErrNoData is returned when asked to draw a result without spectra.
var ErrNoData = errors.New("render: nothing to draw")

// Options controls figure size and density.
type Options struct {
	Width, Height vg.Length
	Format        string // any format accepted by plot.Plot.WriterTo
	MaxTraces     int    // pixels drawn per map file, 0 for all
}

// DefaultOptions returns 6x4 inch PNG figures with at most 50 traces.
func DefaultOptions() Options {
	return Options{Width: 6 * vg.Inch, Height: 4 * vg.Inch, Format: "png", MaxTraces: 50}
}

// Figure is a drawn plot ready to be encoded.
type Figure struct {
	Name string // file stem, also the plot title
	Plot *plot.Plot
	opts Options
}

// WriteTo encodes the figure in the configured format.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	wt, err := f.Plot.WriterTo(f.opts.Width, f.opts.Height, f.opts.Format)
	if err != nil {
		return 0, fmt.Errorf("render: %s: %w", f.Name, err)
	}
	return wt.WriteTo(w)
}

// Bytes returns the encoded figure.
func (f *Figure) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the figure to dir/<name>.<format> and returns the path.
func (f *Figure) Save(dir string) (string, error) {
	data, err := f.Bytes()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, f.Name+"."+f.opts.Format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return path, nil
}

// Renderer draws figures through a path-keyed cache.
type Renderer struct {
	opts  Options
	cache *cache.Cache[string, *Figure]
}

// NewRenderer returns a renderer backed by c. A nil c gets a private
// unbounded cache.
func NewRenderer(c *cache.Cache[string, *Figure], opts Options) *Renderer {
	if c == nil {
		c = cache.New[string, *Figure](0)
	}
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	return &Renderer{opts: opts, cache: c}
}

// InvalidateAll drops every cached figure.
func (r *Renderer) InvalidateAll() { r.cache.InvalidateAll() }

// Render draws an OK file result: traces, range baselines and peak markers.
func (r *Renderer) Render(res *pipeline.FileResult) (*Figure, error) {
	if res == nil || res.Status != pipeline.StatusOK || res.Set.Empty() {
		return nil, ErrNoData
	}
	return r.cache.GetOrCompute(res.Path, func() (*Figure, error) {
		return r.draw(res.Name, res.Set, res.Areas.Regions, res.Peaks.Markers)
	})
}

// Preview draws the raw traces of set only.
func (r *Renderer) Preview(path string, set *spectra.Set) (*Figure, error) {
	if set.Empty() {
		return nil, ErrNoData
	}
	return r.cache.GetOrCompute("preview:"+path, func() (*Figure, error) {
		return r.draw(filepath.Base(path), set, nil, nil)
	})
}

var (
	singleTrace = color.RGBA{A: 255}
	mapTrace    = color.RGBA{R: 211, G: 211, B: 211, A: 153}
)

func (r *Renderer) draw(name string, set *spectra.Set, regions []area.Region, markers []peak.Marker) (*Figure, error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	p := plot.New()
	p.Title.Text = stem
	p.X.Label.Text = "Wavenumber (1/cm)"
	p.Y.Label.Text = "Intensity (a.u.)"
	p.Add(plotter.NewGrid())

	traces := r.traces(set.Len())
	trace := singleTrace
	if set.Len() > 1 {
		trace = mapTrace
	}
	axis := set.Axis()
	for _, sp := range set.Spectra[:traces] {
		l, err := plotter.NewLine(xys(axis, sp.Intensity))
		if err != nil {
			return nil, fmt.Errorf("render: %s: %w", name, err)
		}
		l.Color = trace
		p.Add(l)
	}

	colors := spread(len(regions))
	for i, reg := range regions {
		if reg.Empty() {
			continue
		}
		c := colors[i]
		for px := 0; px < min(traces, len(reg.Intensity)); px++ {
			above, below := bands(reg.Wavenumber, reg.Intensity[px], reg.Baseline[px])
			for _, b := range []struct {
				ring  plotter.XYs
				alpha float64
			}{{above, 0.2}, {below, 0.1}} {
				band, err := plotter.NewPolygon(b.ring)
				if err != nil {
					return nil, fmt.Errorf("render: %s: %w", name, err)
				}
				band.Color = fade(c, b.alpha)
				band.LineStyle.Width = 0
				p.Add(band)
			}

			base, err := plotter.NewLine(xys(reg.Wavenumber, reg.Baseline[px]))
			if err != nil {
				return nil, fmt.Errorf("render: %s: %w", name, err)
			}
			base.Color = fade(c, 0.5)
			base.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(base)
			if px == 0 {
				p.Legend.Add(reg.Range.Label(), base)
			}
		}
	}

	if len(markers) > 0 {
		lo, hi := yExtent(set, traces)
		colors := spread(len(markers))
		for i, m := range markers {
			if len(m.ArgMax) == 0 || m.ArgMax[0] < 0 {
				continue
			}
			x := axis[m.ArgMax[0]]
			l, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
			if err != nil {
				return nil, fmt.Errorf("render: %s: %w", name, err)
			}
			l.Color = fade(colors[i], 0.7)
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(l)
			p.Legend.Add(fmt.Sprintf("peak %g", m.Target), l)
		}
	}
	p.Legend.Top = true

	return &Figure{Name: stem, Plot: p, opts: r.opts}, nil
}

func (r *Renderer) traces(n int) int {
	if r.opts.MaxTraces > 0 && n > r.opts.MaxTraces {
		return r.opts.MaxTraces
	}
	return n
}

func xys(x, y []float64) plotter.XYs {
	out := make(plotter.XYs, len(x))
	for i := range x {
		out[i].X, out[i].Y = x[i], y[i]
	}
	return out
}

// ring closes the band between a trace and its baseline.
func ring(x, top, base []float64) plotter.XYs {
	out := make(plotter.XYs, 0, 2*len(x))
	for i := range x {
		out = append(out, plotter.XY{X: x[i], Y: top[i]})
	}
	for i := len(x) - 1; i >= 0; i-- {
		out = append(out, plotter.XY{X: x[i], Y: base[i]})
	}
	return out
}

// bands returns the closed areas where top lies above base and where it
// lies below, split at the interpolated crossings.
func bands(x, top, base []float64) (above, below plotter.XYs) {
	xs, ts, bs := crossings(x, top, base)
	hi := make([]float64, len(xs))
	lo := make([]float64, len(xs))
	for i := range xs {
		hi[i] = max(ts[i], bs[i])
		lo[i] = min(ts[i], bs[i])
	}
	return ring(xs, hi, bs), ring(xs, bs, lo)
}

// crossings resamples top and base with an extra point wherever the two
// lines cross between samples.
func crossings(x, top, base []float64) (xs, ts, bs []float64) {
	for i := range x {
		if i > 0 {
			d0, d1 := top[i-1]-base[i-1], top[i]-base[i]
			if d0*d1 < 0 {
				f := d0 / (d0 - d1)
				y := base[i-1] + f*(base[i]-base[i-1])
				xs = append(xs, x[i-1]+f*(x[i]-x[i-1]))
				ts = append(ts, y)
				bs = append(bs, y)
			}
		}
		xs = append(xs, x[i])
		ts = append(ts, top[i])
		bs = append(bs, base[i])
	}
	return xs, ts, bs
}

func yExtent(set *spectra.Set, traces int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, sp := range set.Spectra[:traces] {
		for _, v := range sp.Intensity {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// spread samples n evenly spaced colors from a perceptually uniform map,
// avoiding its near-black and near-white ends.
func spread(n int) []color.Color {
	out := make([]color.Color, n)
	if n == 0 {
		return out
	}
	cmap := colorMap()
	for i := range out {
		v := 0.15
		if n > 1 {
			v += 0.7 * float64(i) / float64(n-1)
		}
		c, err := cmap.At(v)
		if err != nil {
			c = color.Black
		}
		out[i] = c
	}
	return out
}

func colorMap() palette.ColorMap {
	cmap := moreland.Kindlmann()
	cmap.SetMin(0)
	cmap.SetMax(1)
	return cmap
}

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(math.Round(alpha * 255))}
}
