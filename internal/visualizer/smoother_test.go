package visualizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olivier-w/climid/internal/dsp"
)

// spectrumWithRawValue builds a transform output whose first bin produces the
// given raw analyzer value, i.e. 100*(log10(power)+1.5) = want.
func spectrumWithRawValue(want float64, bins int) []dsp.Complex {
	power := math.Pow(10, want/100-1.5)
	out := make([]dsp.Complex, bins)
	out[0] = dsp.Rect(math.Sqrt(power), 0)
	return out
}

func TestSmootherRiseBranch(t *testing.T) {
	s := NewSmoother(1)
	s.Update(spectrumWithRawValue(100, 1))
	assert.InDelta(t, 50, s.Values()[0], 1e-9)
}

func TestSmootherDecayBranch(t *testing.T) {
	s := NewSmoother(1)
	s.Values()[0] = 100

	// Raw value 0: silent bin against a tall bar decays by 5%.
	s.Update([]dsp.Complex{dsp.Rect(0, 0)})
	assert.InDelta(t, 95, s.Values()[0], 1e-9)
}

func TestSmootherFloorsSilentBin(t *testing.T) {
	s := NewSmoother(4)
	s.Update(make([]dsp.Complex, 4))
	for i, v := range s.Values() {
		assert.Zero(t, v, "bin %d", i)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "bin %d", i)
	}
}

func TestSmootherConvergesToSteadyValue(t *testing.T) {
	s := NewSmoother(1)
	in := spectrumWithRawValue(80, 1)
	for range 200 {
		s.Update(in)
	}
	assert.InDelta(t, 80, s.Values()[0], 0.5)
}

func TestSmootherIgnoresBinsBeyondSpectrum(t *testing.T) {
	s := NewSmoother(8)
	s.Update(make([]dsp.Complex, 4))
	assert.Len(t, s.Values(), 8)
}

func TestBarGeometry(t *testing.T) {
	smoothed := []float64{0, 10.7, 250}
	bars := BarGeometry(smoothed, 300, nil)

	assert.Equal(t, []Bar{
		{X: 0, TopY: 300, Height: 2},
		{X: 4, TopY: 290, Height: 12},
		{X: 8, TopY: 50, Height: 252},
	}, bars)
}

func TestBarGeometryReusesDst(t *testing.T) {
	dst := make([]Bar, 0, 4)
	bars := BarGeometry([]float64{1, 2}, 100, dst)
	assert.Len(t, bars, 2)
	assert.Same(t, &dst[:1][0], &bars[0])
}
