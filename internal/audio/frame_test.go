package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func frame(fill func(i int) (l, r float64)) (left, right []float64) {
	left = make([]float64, FrameSize)
	right = make([]float64, FrameSize)
	for i := range left {
		left[i], right[i] = fill(i)
	}
	return left, right
}

func TestQuantizeSaturates(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{2.0, 32767},
		{-2.0, -32768},
		{0.0, 0},
		{1.0, 32767}, // 32768 saturates to the max representable
		{-1.0, -32768},
		{0.5, 16384},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, quantize(c.in), "input %v", c.in)
	}
}

func TestProcessInterleavesChannels(t *testing.T) {
	left, right := frame(func(i int) (float64, float64) { return 0.25, -0.5 })

	p := NewFrameProcessor()
	p.Process(left, right)

	pcm := p.PCM()
	assert.Len(t, pcm, 2*FrameSize)
	assert.Equal(t, int16(8192), pcm[0])
	assert.Equal(t, int16(-16384), pcm[1])
	assert.Equal(t, int16(8192), pcm[2*FrameSize-2])
	assert.Equal(t, int16(-16384), pcm[2*FrameSize-1])
}

func TestProcessDownmixesUnclamped(t *testing.T) {
	left, right := frame(func(i int) (float64, float64) { return 0.2, 0.6 })

	p := NewFrameProcessor()
	p.Process(left, right)

	spec := p.Spectrum()
	assert.Len(t, spec, FrameSize)
	assert.InDelta(t, 0.4, spec[0].Re, 1e-12)
	assert.Zero(t, spec[0].Im)

	// Downmix uses the raw floats even when playback saturates.
	left, right = frame(func(i int) (float64, float64) { return 3.0, 1.0 })
	p.Process(left, right)
	assert.Equal(t, int16(32767), p.PCM()[0])
	assert.InDelta(t, 2.0, p.Spectrum()[0].Re, 1e-12)
}

func TestProcessRejectsShortFrame(t *testing.T) {
	p := NewFrameProcessor()
	assert.Panics(t, func() {
		p.Process(make([]float64, FrameSize-1), make([]float64, FrameSize))
	})
}

func TestBuffersReusedAcrossFrames(t *testing.T) {
	p := NewFrameProcessor()
	left, right := frame(func(i int) (float64, float64) { return 0, 0 })
	p.Process(left, right)
	pcm, spec := p.PCM(), p.Spectrum()

	p.Process(left, right)
	assert.Same(t, &pcm[0], &p.PCM()[0])
	assert.Same(t, &spec[0], &p.Spectrum()[0])
}
