package visualizer

import (
	"fmt"
	"math"
	"strings"
)

// channelMeter tracks the smoothed RMS level and peak-hold marker for one
// channel. Attack is fast and release slow so the needle jumps on transients
// and eases back down.
type channelMeter struct {
	rms  float64
	peak float64
}

func (c *channelMeter) update(rms float64) {
	const attack = 0.6
	const release = 0.15
	const peakDecay = 0.02

	if rms > c.rms {
		c.rms = c.rms*(1-attack) + rms*attack
	} else {
		c.rms = c.rms*(1-release) + rms*release
	}

	if c.rms > c.peak {
		c.peak = c.rms
	} else {
		c.peak -= peakDecay
		if c.peak < 0 {
			c.peak = 0
		}
	}
}

// VUMeter renders a stereo VU meter with peak hold.
type VUMeter struct {
	left   channelMeter
	right  channelMeter
	output string
}

// NewVUMeter creates a new VU meter visualizer.
func NewVUMeter() *VUMeter {
	return &VUMeter{}
}

func (v *VUMeter) Name() string { return "vu meter" }

func (v *VUMeter) Update(f Frame, width, height int) {
	samples := f.PCM
	if len(samples) < 2 {
		return
	}

	var leftSum, rightSum float64
	count := 0
	for i := 0; i+1 < len(samples); i += 2 {
		l := float64(samples[i]) / 32768.0
		r := float64(samples[i+1]) / 32768.0
		leftSum += l * l
		rightSum += r * r
		count++
	}
	if count == 0 {
		return
	}

	v.left.update(math.Sqrt(leftSum / float64(count)))
	v.right.update(math.Sqrt(rightSum / float64(count)))

	barWidth := width - 6 // "L  " prefix + margin
	if barWidth < 10 {
		barWidth = 10
	}

	var sb strings.Builder
	if height >= 4 {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(" L  %s", renderVUBar(v.left, barWidth)))
	sb.WriteString("\n")
	if height >= 3 {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(" R  %s", renderVUBar(v.right, barWidth)))
	if height >= 4 {
		sb.WriteString("\n")
	}

	v.output = sb.String()
}

// rmsToLevel converts an RMS value to a 0.0–1.0 bar level on a dB scale,
// compressing the dynamic range so bass-heavy material does not constantly
// peg the meter.
func rmsToLevel(rms float64) float64 {
	const dbFloor = -40.0 // silence threshold
	if rms < 1e-6 {
		return 0
	}
	db := 20.0 * math.Log10(rms)
	if db < dbFloor {
		return 0
	}
	level := (db - dbFloor) / -dbFloor
	if level > 1.0 {
		level = 1.0
	}
	return level
}

func renderVUBar(m channelMeter, width int) string {
	level := rmsToLevel(m.rms)
	peakLevel := rmsToLevel(m.peak)

	filled := int(level * float64(width))
	peakPos := int(peakLevel * float64(width))
	if peakPos >= width {
		peakPos = width - 1
	}

	bar := make([]rune, width)
	for i := range width {
		switch {
		case i < filled:
			bar[i] = '█'
		case i == peakPos && peakPos > 0:
			bar[i] = '│'
		default:
			bar[i] = '─'
		}
	}

	if currentColorProfile() == colorNone {
		return string(bar)
	}

	var sb strings.Builder
	color := newANSIState()
	for i, ch := range bar {
		switch {
		case ch == '│':
			color.set(&sb, colorRGB{R: 255, G: 252, B: 210})
		case i < width*6/10:
			color.set(&sb, colorRGB{R: 60, G: 224, B: 116})
		case i < width*8/10:
			color.set(&sb, colorRGB{R: 240, G: 198, B: 72})
		default:
			color.set(&sb, colorRGB{R: 242, G: 96, B: 86})
		}
		sb.WriteRune(ch)
	}
	color.reset(&sb)
	return sb.String()
}

func (v *VUMeter) View() string {
	return v.output
}
