package visualizer

// Bar describes one spectrum bar in display units for the renderer.
type Bar struct {
	X      int
	TopY   int
	Height int
}

// BarGeometry maps smoothed bin values to bar descriptors: bin t sits at
// x=4t, carries a +2 visual minimum so silent bins stay visible as a thin
// bar, and tops out at displayHeight minus the bin value. The mapping is
// pure; dst is reused when it has capacity.
func BarGeometry(smoothed []float64, displayHeight int, dst []Bar) []Bar {
	dst = dst[:0]
	for t, v := range smoothed {
		dst = append(dst, Bar{
			X:      4 * t,
			TopY:   displayHeight - int(v),
			Height: int(v) + 2,
		})
	}
	return dst
}
