package testutil

import (
	"encoding/binary"
	"math"
)

// SPCFloat encodes a single-subfile SPC container (new LSB layout) with an
// explicit float32 X array and float32 Y data.
func SPCFloat(x, y []float64) []byte {
	if len(x) != len(y) {
		panic("testutil: SPCFloat length mismatch")
	}
	le := binary.LittleEndian
	buf := make([]byte, 512+4*len(x)+32+4*len(y))
	buf[0] = 0x80 // explicit X values
	buf[1] = 0x4B
	buf[3] = 0x80 // float Y
	le.PutUint32(buf[4:], uint32(len(x)))
	if len(x) > 0 {
		le.PutUint64(buf[8:], math.Float64bits(x[0]))
		le.PutUint64(buf[16:], math.Float64bits(x[len(x)-1]))
	}
	le.PutUint32(buf[24:], 1)
	pos := 512
	for _, v := range x {
		le.PutUint32(buf[pos:], math.Float32bits(float32(v)))
		pos += 4
	}
	buf[pos+1] = 0x80
	pos += 32
	for _, v := range y {
		le.PutUint32(buf[pos:], math.Float32bits(float32(v)))
		pos += 4
	}
	return buf
}
