package visualizer

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// Cursor spring: under-damped enough to swing through the figure instead of
// crawling along it, tuned for the display tick rate.
const (
	scopeTickRate      = 20
	scopeSpringFreq    = 10.0
	scopeDamping       = 0.7
	scopeMinTrail      = 32
	scopeTrailPerCol   = 4
	scopeBaseHue       = 0.08
	scopeHueSpan       = 0.75
	scopeHueAgeShift   = 0.12
	scopeSaturation    = 0.78
	scopeMinBrightness = 0.3
)

// glyph per brightness band, dimmest first
var scopeGlyphs = []rune{'·', '•', '✶', '✹'}

type scopeSample struct {
	x float64
	y float64
}

// Lissajous is a stereo phase scope: each left/right sample pair is a point
// in the unit square, traced by a spring-damped cursor that leaves a fading
// trail. Pure mono collapses the figure to the rising diagonal, wide stereo
// opens it up.
type Lissajous struct {
	spring harmonica.Spring
	cx, cy float64
	vx, vy float64

	trail  []scopeSample
	output string
}

func NewLissajous() *Lissajous {
	return &Lissajous{
		spring: harmonica.NewSpring(harmonica.FPS(scopeTickRate), scopeSpringFreq, scopeDamping),
	}
}

func (l *Lissajous) Name() string { return "lissajous" }

func (l *Lissajous) Update(f Frame, width, height int) {
	if len(f.PCM) < 4 || width < 6 || height < 2 {
		l.output = ""
		return
	}

	cols := max(width-2, 8)
	rows := height

	l.advanceCursor(f.PCM, cols)

	if keep := max(cols*scopeTrailPerCol, scopeMinTrail); len(l.trail) > keep {
		l.trail = l.trail[len(l.trail)-keep:]
	}

	l.output = l.plot(cols, rows)
}

// advanceCursor feeds a decimated sample stream through the spring and
// appends the cursor positions to the trail. Decimation keeps the work per
// tick proportional to the display width, not the frame size.
func (l *Lissajous) advanceCursor(pcm []int16, cols int) {
	pairs := len(pcm) / 2
	step := max(pairs/(cols*2), 1)

	for i := 0; i < pairs; i += step {
		left := float64(pcm[2*i]) / 32768.0
		right := float64(pcm[2*i+1]) / 32768.0

		// map [-1,1] samples into the unit square
		l.cx, l.vx = l.spring.Update(l.cx, l.vx, (left+1)/2)
		l.cy, l.vy = l.spring.Update(l.cy, l.vy, (right+1)/2)
		l.trail = append(l.trail, scopeSample{x: l.cx, y: l.cy})
	}
}

// plot rasterizes the trail, newest samples winning cell conflicts so the
// cursor head always shows at full brightness.
func (l *Lissajous) plot(cols, rows int) string {
	type cell struct {
		glyph      rune
		brightness float64
	}
	grid := make([]cell, rows*cols)

	denom := float64(max(len(l.trail)-1, 1))
	for i, p := range l.trail {
		c := int(clamp01(p.x) * float64(cols-1))
		r := int((1 - clamp01(p.y)) * float64(rows-1))
		brightness := float64(i) / denom
		at := &grid[r*cols+c]
		if at.glyph != 0 && brightness < at.brightness {
			continue
		}
		at.glyph = scopeGlyphs[int(brightness*float64(len(scopeGlyphs)-1))]
		at.brightness = brightness
	}

	profile := currentColorProfile()
	var out strings.Builder
	color := newANSIState()
	for r := 0; r < rows; r++ {
		if r > 0 {
			out.WriteByte('\n')
		}
		for c := 0; c < cols; c++ {
			at := grid[r*cols+c]
			if at.glyph == 0 {
				out.WriteByte(' ')
				continue
			}
			if profile != colorNone {
				hue := math.Mod(scopeBaseHue+float64(c)/float64(cols)*scopeHueSpan+at.brightness*scopeHueAgeShift, 1)
				color.set(&out, rgbFromHSV(hue, scopeSaturation, scopeMinBrightness+(1-scopeMinBrightness)*at.brightness))
			}
			out.WriteRune(at.glyph)
		}
		color.reset(&out)
	}

	return out.String()
}

func (l *Lissajous) View() string {
	return l.output
}
