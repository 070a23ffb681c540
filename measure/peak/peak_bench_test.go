package peak

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-raman/internal/testutil"
	"github.com/cwbudde/algo-raman/spectra"
)

func benchMap(pixels int) *spectra.Set {
	axis := testutil.Axis(200, 1, 1024)
	set := &spectra.Set{}
	for p := range pixels {
		y := testutil.AddNoise(testutil.PeakOnBackground(axis, 1000, 8, 100, 50, 0.02), int64(p), 0.5)
		set.Spectra = append(set.Spectra, spectra.Spectrum{Wavenumber: axis, Intensity: y})
	}
	return set
}

func BenchmarkExtractTarget(b *testing.B) {
	for _, pixels := range []int{1, 256, 4096} {
		b.Run("pixels_"+strconv.Itoa(pixels), func(b *testing.B) {
			set := benchMap(pixels)

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_ = ExtractTarget(set, 1000.4)
			}
		})
	}
}

func BenchmarkNearest(b *testing.B) {
	axis := testutil.Axis(200, 0.5, 8192)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_ = Nearest(axis, 2100.2)
	}
}
