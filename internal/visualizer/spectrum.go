package visualizer

import "strings"

var barChars = []rune(" ▁▂▃▄▅▆▇█")

// Spectrum renders analyzer bar descriptors as columns of block characters.
// Each bar covers four terminal cells: three filled columns and a gap,
// mirroring the four-unit bar pitch of the geometry.
type Spectrum struct {
	output string
}

// NewSpectrum creates the spectrum-analyzer visualizer.
func NewSpectrum() *Spectrum {
	return &Spectrum{}
}

func (s *Spectrum) Name() string { return "spectrum" }

func (s *Spectrum) Update(f Frame, width, height int) {
	if len(f.Bars) == 0 || width < 4 || height < 1 {
		s.output = ""
		return
	}

	// The geometry is produced in analyzer units; scale the tallest bar to
	// the cell grid, with a floor so noise does not peg the display.
	peak := 100.0
	for _, b := range f.Bars {
		if float64(b.Height) > peak {
			peak = float64(b.Height)
		}
	}
	cellRows := float64(height) * float64(len(barChars)-1)

	rows := make([]string, height)
	profile := currentColorProfile()
	for row := range height {
		var line strings.Builder
		color := newANSIState()
		rowFromBottom := float64(height-1-row) * float64(len(barChars)-1)
		for i, b := range f.Bars {
			level := float64(b.Height) / peak * cellRows
			charIdx := 0
			switch {
			case level >= rowFromBottom+float64(len(barChars)-1):
				charIdx = len(barChars) - 1
			case level > rowFromBottom:
				charIdx = int(level - rowFromBottom)
			}
			if profile != colorNone && charIdx > 0 {
				color.set(&line, heatColor(float64(height-1-row)/float64(height)))
			}
			ch := barChars[charIdx]
			for range 3 {
				line.WriteRune(ch)
			}
			if i < len(f.Bars)-1 {
				line.WriteByte(' ')
			}
		}
		color.reset(&line)
		rows[row] = line.String()
	}

	s.output = strings.Join(rows, "\n")
}

func (s *Spectrum) View() string {
	return s.output
}
