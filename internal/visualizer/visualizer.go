package visualizer

// Frame carries one tick of display data: the last interleaved stereo PCM
// frame for the sample-domain modes and the spectrum bar descriptors for the
// analyzer mode.
type Frame struct {
	PCM  []int16
	Bars []Bar
}

// Visualizer renders audio data as terminal art.
type Visualizer interface {
	Name() string
	Update(f Frame, width, height int)
	View() string
}

// Modes returns all available visualizers in cycle order.
func Modes() []Visualizer {
	return []Visualizer{
		NewSpectrum(),
		NewVUMeter(),
		NewLissajous(),
	}
}
