// Package audio converts rendered float frames into device PCM and FFT input.
package audio

import (
	"fmt"
	"math"

	"github.com/olivier-w/climid/internal/dsp"
)

const (
	// SampleRate is the synthesis and playback rate in Hz.
	SampleRate = 44100
	// FrameSize is the number of samples per channel rendered each frame.
	// It doubles as the FFT size, so it must stay a power of two.
	FrameSize = 2048
)

// FrameProcessor quantizes a stereo float frame for playback and downmixes it
// to mono for spectral analysis in a single pass. Both output buffers are
// allocated once and rewritten every frame.
type FrameProcessor struct {
	pcm      []int16
	spectrum []dsp.Complex
}

// NewFrameProcessor allocates a processor for FrameSize-sample frames.
func NewFrameProcessor() *FrameProcessor {
	return &FrameProcessor{
		pcm:      make([]int16, 2*FrameSize),
		spectrum: make([]dsp.Complex, FrameSize),
	}
}

// Process consumes one rendered stereo frame. left and right must each hold
// exactly FrameSize samples. Samples are nominally in [-1, 1] but are not
// assumed bounded: out-of-range values saturate to the PCM limits, which is
// defined behavior, not an error. The mono downmix for the FFT is taken from
// the unclamped floats.
func (p *FrameProcessor) Process(left, right []float64) {
	if len(left) != FrameSize || len(right) != FrameSize {
		panic(fmt.Sprintf("audio: frame size %d, got %d/%d", FrameSize, len(left), len(right)))
	}
	for i := 0; i < FrameSize; i++ {
		p.pcm[2*i] = quantize(left[i])
		p.pcm[2*i+1] = quantize(right[i])
		p.spectrum[i] = dsp.Rect(0.5*(left[i]+right[i]), 0)
	}
}

// PCM returns the interleaved 16-bit playback buffer for the last frame.
// The slice is reused by the next Process call.
func (p *FrameProcessor) PCM() []int16 { return p.pcm }

// Spectrum returns the FFT input buffer for the last frame: mono downmix in
// the real part, imaginary part zero. Reused by the next Process call.
func (p *FrameProcessor) Spectrum() []dsp.Complex { return p.spectrum }

// quantize scales a float sample to 16-bit PCM, rounding to nearest and
// saturating at the representation limits.
func quantize(v float64) int16 {
	s := math.Round(v * 32768)
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}
