package dsp

import (
	"fmt"
	"math"
	"math/bits"
)

// FFT is a radix-2 Cooley-Tukey transform fixed to one power-of-two size.
// The engine itself is stateless between calls; callers own the buffers and
// reuse them every tick.
type FFT struct {
	n    int
	log2 int
}

// NewFFT creates a transform for size n. n must be a power of two; anything
// else is a programmer error and panics.
func NewFFT(n int) *FFT {
	if n < 1 || bits.OnesCount(uint(n)) != 1 {
		panic(fmt.Sprintf("dsp: fft size %d is not a power of two", n))
	}
	return &FFT{n: n, log2: bits.TrailingZeros(uint(n))}
}

// Size returns the transform size.
func (f *FFT) Size() int { return f.n }

// Forward computes the forward transform of src into dst. Both slices must
// have exactly the engine's size.
func (f *FFT) Forward(dst, src []Complex) {
	f.checkLen(dst, src)
	f.transform(dst, src, -2*math.Pi)
}

// Inverse computes the inverse transform of src into dst, scaled by 1/n so
// that Inverse(Forward(x)) reproduces x.
func (f *FFT) Inverse(dst, src []Complex) {
	f.checkLen(dst, src)
	f.transform(dst, src, 2*math.Pi)
	for i := range dst {
		dst[i] = dst[i].ScaleDiv(float64(f.n))
	}
}

func (f *FFT) checkLen(dst, src []Complex) {
	if len(dst) != f.n || len(src) != f.n {
		panic(fmt.Sprintf("dsp: fft size %d, got buffers %d/%d", f.n, len(dst), len(src)))
	}
}

func (f *FFT) transform(dst, src []Complex, theta float64) {
	// Bit-reversal placement: the iterative butterfly network consumes its
	// input in bit-reversed index order.
	for i := range src {
		dst[i] = src[reverseBits(i, f.log2)]
	}

	// Butterfly stages, half-size doubling each pass. The rotation angle per
	// stage halves as the block size doubles.
	for nh := 1; nh < f.n; nh <<= 1 {
		step := theta / float64(2*nh)
		for s := 0; s < f.n; s += 2 * nh {
			for i := 0; i < nh; i++ {
				li := s + i
				ri := li + nh
				rotated := dst[ri].Mul(Unit(step * float64(i)))
				dst[li], dst[ri] = dst[li].Add(rotated), dst[li].Sub(rotated)
			}
		}
	}
}

// reverseBits reverses the low k bits of i.
func reverseBits(i, k int) int {
	return int(bits.Reverse(uint(i)) >> (bits.UintSize - k))
}
