package formula

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	vals := []float64{4, 2, 2, -3}
	tests := []struct {
		src  string
		want float64
	}{
		{"1/(2+3)", 1.0},
		{"1", 4},
		{"1 + 2 * 3", 8},
		{"(1 + 2) * 3", 12},
		{"1 - 2 - 3", 0},
		{"1 / 2 / 3", 1},
		{"-1", -4},
		{"--1", 4},
		{"+1", 4},
		{"2 ** 3", 4},
		{"-2**2", -4},
		{"2**-1", 0.0625},
		{"2**3**2", 16},
		{"1 * 0.5", 2},
		{"2.5 + .5", 3},
		{"1e1 * 2", 20},
		{"4 * 1", -12},
		{"  1/2  ", 2},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			f, err := Parse(tc.src)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, f.Eval(vals), 1e-12)
		})
	}
}

func TestEvalIEEEDivision(t *testing.T) {
	f := MustParse("1/2")
	assert.True(t, math.IsInf(f.Eval([]float64{1, 0}), 1))
	assert.True(t, math.IsInf(f.Eval([]float64{-1, 0}), -1))
	assert.True(t, math.IsNaN(f.Eval([]float64{0, 0})))
}

func TestEvalMissingColumnIsNaN(t *testing.T) {
	f := MustParse("1 + 5")
	assert.True(t, math.IsNaN(f.Eval([]float64{1, 2, 3})))
}

func TestReferencesAndCheck(t *testing.T) {
	f := MustParse("(3 + 1) / 3 * 0.5 + 2**2")
	assert.Equal(t, []int{1, 2, 3}, f.References())
	assert.Equal(t, "(3 + 1) / 3 * 0.5 + 2**2", f.String())

	require.NoError(t, f.Check(3))

	err := f.Check(2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormula)
	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, f.String(), ferr.Formula)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"   ",
		"1 +",
		"(1 + 2",
		"1 2",
		"a + 1",
		"1 % 2",
		"0 + 1",
		"* 2",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormula)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("1 +") })
}
