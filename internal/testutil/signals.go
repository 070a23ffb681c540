package testutil

import (
	"math"
	"math/rand"
)

// Axis returns n evenly spaced wavenumbers starting at start.
func Axis(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Line evaluates intercept + slope*x over axis.
func Line(axis []float64, intercept, slope float64) []float64 {
	out := make([]float64, len(axis))
	for i, x := range axis {
		out[i] = intercept + slope*x
	}
	return out
}

// Gaussian evaluates amplitude*exp(-(x-center)^2 / (2*sigma^2)) over axis.
func Gaussian(axis []float64, center, sigma, amplitude float64) []float64 {
	out := make([]float64, len(axis))
	for i, x := range axis {
		d := (x - center) / sigma
		out[i] = amplitude * math.Exp(-0.5*d*d)
	}
	return out
}

// PeakOnBackground is a Gaussian band sitting on a linear background, the
// typical shape of an isolated Raman band.
func PeakOnBackground(axis []float64, center, sigma, amplitude, intercept, slope float64) []float64 {
	out := Gaussian(axis, center, sigma, amplitude)
	for i, x := range axis {
		out[i] += intercept + slope*x
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// AddNoise returns signal plus seeded noise of the given amplitude.
func AddNoise(signal []float64, seed int64, amplitude float64) []float64 {
	noise := DeterministicNoise(seed, amplitude, len(signal))
	out := make([]float64, len(signal))
	for i := range signal {
		out[i] = signal[i] + noise[i]
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
