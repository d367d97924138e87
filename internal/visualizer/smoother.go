package visualizer

import (
	"math"

	"github.com/olivier-w/climid/internal/dsp"
)

// Smoother holds the per-bin display state of the spectrum analyzer. It is
// the only state that survives across ticks: bin values rise fast on attack
// and fall slowly on release, the classic falling-bars behavior. The bin
// count is fixed at construction; a display resize means a new Smoother.
type Smoother struct {
	smoothed []float64
}

// NewSmoother creates a smoother for bins visible bins, all starting at zero.
func NewSmoother(bins int) *Smoother {
	if bins < 0 {
		bins = 0
	}
	return &Smoother{smoothed: make([]float64, bins)}
}

// Bins returns the visible bin count.
func (s *Smoother) Bins() int { return len(s.smoothed) }

// Values returns the smoothed per-bin values. The slice is owned by the
// Smoother and rewritten by Update.
func (s *Smoother) Values() []float64 { return s.smoothed }

// Update folds a fresh transform output into the persistent bin state.
// Raw bin power becomes a log-scaled magnitude, offset and floored at zero so
// a silent bin (power 0) contributes exactly 0 instead of -Inf.
func (s *Smoother) Update(spectrum []dsp.Complex) {
	n := len(s.smoothed)
	if len(spectrum) < n {
		n = len(spectrum)
	}
	for t := 0; t < n; t++ {
		c := spectrum[t]
		val := 100 * math.Max(math.Log10(c.Re*c.Re+c.Im*c.Im)+1.5, 0)
		if val > s.smoothed[t] {
			s.smoothed[t] = 0.5*s.smoothed[t] + 0.5*val
		} else {
			s.smoothed[t] = 0.95*s.smoothed[t] + 0.05*val
		}
	}
}
