package ui

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/climid/internal/media"
	"github.com/olivier-w/climid/internal/queue"
)

type stubPlayer struct {
	renders  int
	loads    []string
	restarts int
	loadErr  map[string]error
	done     bool
	duration time.Duration
}

func (p *stubPlayer) Render(left, right []float64) {
	p.renders++
	for i := range left {
		left[i] = 0.1
		right[i] = -0.1
	}
}

func (p *stubPlayer) Load(path string) error {
	if err := p.loadErr[path]; err != nil {
		return err
	}
	p.loads = append(p.loads, path)
	return nil
}

func (p *stubPlayer) Restart()                { p.restarts++; p.done = false }
func (p *stubPlayer) Position() time.Duration { return time.Second }
func (p *stubPlayer) Duration() time.Duration { return p.duration }
func (p *stubPlayer) Done() bool              { return p.done }

type stubOutput struct {
	ready   bool
	submits int
	paused  bool
	volume  float64
	closed  bool
}

func (o *stubOutput) IsReady() bool            { return o.ready }
func (o *stubOutput) Submit(pcm []int16)       { o.submits++ }
func (o *stubOutput) TogglePause()             { o.paused = !o.paused }
func (o *stubOutput) Paused() bool             { return o.paused }
func (o *stubOutput) Volume() float64          { return o.volume }
func (o *stubOutput) AdjustVolume(d float64)   { o.volume += d }
func (o *stubOutput) Close()                   { o.closed = true }

func testModel(p *stubPlayer, o *stubOutput) Model {
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := New(p, o, media.Metadata{Title: "test"}, log)
	m.width = 80
	m.height = 24
	m.resizeSmoother()
	return m
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd, "tick must reschedule itself")
	return next.(Model)
}

func TestTickProducesFrameOnlyWhenDeviceReady(t *testing.T) {
	p := &stubPlayer{duration: time.Minute}
	o := &stubOutput{ready: true}
	m := testModel(p, o)

	m = tick(t, m)
	assert.Equal(t, 1, p.renders)
	assert.Equal(t, 1, o.submits)

	o.ready = false
	m = tick(t, m)
	assert.Equal(t, 1, p.renders, "no fresh frame while the device is busy")
	assert.Equal(t, 1, o.submits)
	assert.Equal(t, time.Second, m.elapsed, "transform path still ran")
}

func TestTickSkipsPipelineWhilePaused(t *testing.T) {
	p := &stubPlayer{duration: time.Minute}
	o := &stubOutput{ready: true}
	m := testModel(p, o)
	m.paused = true

	tick(t, m)
	assert.Zero(t, p.renders)
	assert.Zero(t, o.submits)
}

func TestSpaceTogglesPause(t *testing.T) {
	p := &stubPlayer{}
	o := &stubOutput{}
	m := testModel(p, o)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(Model)
	assert.True(t, m.paused)
	assert.True(t, o.paused)
}

func TestVolumeKeys(t *testing.T) {
	p := &stubPlayer{}
	o := &stubOutput{volume: 0.5}
	m := testModel(p, o)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.InDelta(t, 0.55, m.volume, 1e-9)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.InDelta(t, 0.5, m.volume, 1e-9)
}

func TestVisualizerModeCycles(t *testing.T) {
	m := testModel(&stubPlayer{}, &stubOutput{})
	names := map[string]bool{}
	for range len(m.modes) {
		names[m.modes[m.mode].Name()] = true
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
		m = next.(Model)
	}
	assert.Len(t, names, len(m.modes), "cycling visits every mode")
	assert.Equal(t, 0, m.mode, "full cycle returns to the first mode")
}

func TestRepeatOneRestartsAtEnd(t *testing.T) {
	p := &stubPlayer{done: true, duration: time.Minute}
	o := &stubOutput{ready: false}
	m := testModel(p, o)
	m.repeatMode = RepeatOne

	m = tick(t, m)
	assert.Equal(t, 1, p.restarts)
	assert.False(t, m.quitting)
}

func TestQuitsAtEndWithoutQueue(t *testing.T) {
	p := &stubPlayer{done: true}
	o := &stubOutput{}
	m := testModel(p, o)

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.True(t, m.quitting)
	assert.True(t, o.closed)
	require.NotNil(t, cmd)
}

func TestAdvanceSkipsUnplayableTracks(t *testing.T) {
	p := &stubPlayer{
		done:    true,
		loadErr: map[string]error{"/m/bad.mid": errors.New("broken header")},
	}
	o := &stubOutput{}
	m := testModel(p, o)
	m.queue = queue.New([]queue.Track{
		{Title: "first", Path: "/m/first.mid", State: queue.Playing},
		{Title: "bad", Path: "/m/bad.mid"},
		{Title: "good", Path: "/m/good.mid"},
	})

	p.done = true
	m = tick(t, m)
	assert.False(t, m.quitting)
	assert.Equal(t, []string{"/m/good.mid"}, p.loads)
	assert.Equal(t, queue.Failed, m.queue.Track(1).State)
	assert.Equal(t, queue.Playing, m.queue.Track(2).State)
}

func TestResizeSmootherDerivesBinsFromWidth(t *testing.T) {
	m := testModel(&stubPlayer{}, &stubOutput{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 84, Height: 30})
	m = next.(Model)
	assert.Equal(t, (84-4)/barPitch, m.smoother.Bins())

	prev := m.smoother
	next, _ = m.Update(tea.WindowSizeMsg{Width: 84, Height: 40})
	m = next.(Model)
	assert.Same(t, prev, m.smoother, "height-only resize keeps bin state")
}

func TestHelpTextMentionsQueueKeys(t *testing.T) {
	assert.NotContains(t, helpText(false), "n/p")
	assert.Contains(t, helpText(true), "n/p")
}
