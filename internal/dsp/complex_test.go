package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexArithmetic(t *testing.T) {
	a := Rect(2, 3)
	b := Rect(-1, 0.5)

	assert.Equal(t, Rect(1, 3.5), a.Add(b))
	assert.Equal(t, Rect(3, 2.5), a.Sub(b))

	// (2+3i)(-1+0.5i) = -2+1i-3i-1.5 = -3.5-2i
	p := a.Mul(b)
	assert.InDelta(t, -3.5, p.Re, 1e-12)
	assert.InDelta(t, -2, p.Im, 1e-12)

	q := a.ScaleDiv(4)
	assert.InDelta(t, 0.5, q.Re, 1e-12)
	assert.InDelta(t, 0.75, q.Im, 1e-12)
}

func TestUnit(t *testing.T) {
	assert.Equal(t, Rect(1, 0), Unit(0))

	quarter := Unit(math.Pi / 2)
	assert.InDelta(t, 0, quarter.Re, 1e-12)
	assert.InDelta(t, 1, quarter.Im, 1e-12)

	half := Unit(-math.Pi)
	assert.InDelta(t, -1, half.Re, 1e-12)
	assert.InDelta(t, 0, half.Im, 1e-12)
}
