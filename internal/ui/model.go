package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/olivier-w/climid/internal/audio"
	"github.com/olivier-w/climid/internal/dsp"
	"github.com/olivier-w/climid/internal/media"
	"github.com/olivier-w/climid/internal/queue"
	"github.com/olivier-w/climid/internal/visualizer"
)

// barPitch is the spectrum bar spacing: one bar per four display units.
const barPitch = 4

// chromeLines is the fixed vertical space around the visualizer canvas.
const chromeLines = 12

// Player is the synthesis source driven by the tick loop.
type Player interface {
	Render(left, right []float64)
	Load(path string) error
	Restart()
	Position() time.Duration
	Duration() time.Duration
	Done() bool
}

// Output is the audio device sink.
type Output interface {
	IsReady() bool
	Submit(pcm []int16)
	TogglePause()
	Paused() bool
	Volume() float64
	AdjustVolume(delta float64)
	Close()
}

// Model is the Bubbletea model for the playing screen. It owns every buffer
// in the tick pipeline; all of them are allocated in New and reused, so a
// tick allocates nothing.
type Model struct {
	player Player
	out    Output
	meta   media.Metadata

	fft      *dsp.FFT
	proc     *audio.FrameProcessor
	left     []float64
	right    []float64
	freq     []dsp.Complex
	smoother *visualizer.Smoother
	bars     []visualizer.Bar

	modes []visualizer.Visualizer
	mode  int

	queue       *queue.Queue
	repeatMode  RepeatMode
	shuffleMode ShuffleMode

	progress progress.Model
	width    int
	height   int
	elapsed  time.Duration
	duration time.Duration
	volume   float64
	paused   bool
	quitting bool
	errMsg   string

	log *logrus.Logger
}

// New creates a Model for a single track.
func New(p Player, out Output, meta media.Metadata, log *logrus.Logger) Model {
	bar := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
	return Model{
		player:   p,
		out:      out,
		meta:     meta,
		fft:      dsp.NewFFT(audio.FrameSize),
		proc:     audio.NewFrameProcessor(),
		left:     make([]float64, audio.FrameSize),
		right:    make([]float64, audio.FrameSize),
		freq:     make([]dsp.Complex, audio.FrameSize),
		smoother: visualizer.NewSmoother(0),
		modes:    visualizer.Modes(),
		progress: bar,
		duration: p.Duration(),
		volume:   out.Volume(),
		log:      log,
	}
}

// NewWithQueue creates a Model with a playlist of sibling tracks.
func NewWithQueue(p Player, out Output, meta media.Metadata, q *queue.Queue, log *logrus.Logger) Model {
	m := New(p, out, meta, log)
	m.queue = q
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle(windowTitle(m.meta.Title, false)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, m.width-16)
		m.resizeSmoother()
		return m, nil
	case tickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		return m.shutdown()
	}
	switch msg.String() {
	case " ":
		m.out.TogglePause()
		m.paused = m.out.Paused()
		return m, tea.SetWindowTitle(windowTitle(m.meta.Title, m.paused))
	case "up", "k", "+", "=":
		m.out.AdjustVolume(0.05)
		m.volume = m.out.Volume()
	case "down", "j", "-":
		m.out.AdjustVolume(-0.05)
		m.volume = m.out.Volume()
	case "v":
		m.mode = (m.mode + 1) % len(m.modes)
	case "r":
		m.repeatMode = m.repeatMode.Next()
	case "s":
		m.toggleShuffle()
	case "n":
		if m.queue != nil && m.advanceTrack() {
			return m, tea.SetWindowTitle(windowTitle(m.meta.Title, m.paused))
		}
	case "p":
		if m.queue != nil && m.previousTrack() {
			return m, tea.SetWindowTitle(windowTitle(m.meta.Title, m.paused))
		}
	}
	return m, nil
}

// handleTick runs one pass of the pipeline: produce a frame if the device
// consumed the previous one, then always transform, smooth, and re-render,
// possibly over stale spectral data.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		if m.out.IsReady() {
			m.player.Render(m.left, m.right)
			m.proc.Process(m.left, m.right)
			m.out.Submit(m.proc.PCM())
		}

		m.fft.Forward(m.freq, m.proc.Spectrum())
		m.smoother.Update(m.freq)
		m.bars = visualizer.BarGeometry(m.smoother.Values(), m.vizHeight()*8, m.bars)

		m.elapsed = m.player.Position()

		if m.player.Done() {
			switch {
			case m.repeatMode == RepeatOne:
				m.player.Restart()
				m.elapsed = 0
			case m.queue != nil && m.advanceTrack():
			default:
				return m.shutdown()
			}
		}
	}

	m.modes[m.mode].Update(visualizer.Frame{
		PCM:  m.proc.PCM(),
		Bars: m.bars,
	}, m.vizWidth(), m.vizHeight())

	return m, tickCmd()
}

func (m *Model) shutdown() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.out.Close()
	return *m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m *Model) toggleShuffle() {
	if m.queue == nil {
		return
	}
	m.shuffleMode = m.shuffleMode.Toggle()
	if m.shuffleMode == ShuffleOn {
		m.queue.EnableShuffle()
	} else {
		m.queue.DisableShuffle()
	}
}

// advanceTrack loads the next playable track, skipping ones that fail to
// parse. Returns false when the queue is exhausted.
func (m *Model) advanceTrack() bool {
	if m.queue == nil {
		return false
	}
	m.queue.SetTrackState(m.queue.CurrentIndex(), queue.Done)
	for m.queue.Advance() {
		if m.loadCurrent() {
			return true
		}
	}
	return false
}

func (m *Model) previousTrack() bool {
	if m.queue == nil || !m.queue.Previous() {
		return false
	}
	return m.loadCurrent()
}

func (m *Model) loadCurrent() bool {
	t := m.queue.Current()
	if err := m.player.Load(t.Path); err != nil {
		m.queue.SetTrackState(m.queue.CurrentIndex(), queue.Failed)
		m.errMsg = fmt.Sprintf("skipped %s: %v", t.Title, err)
		m.log.WithError(err).WithField("path", t.Path).Warn("skipping track")
		return false
	}
	m.queue.SetTrackState(m.queue.CurrentIndex(), queue.Playing)
	m.meta = media.ReadMetadata(t.Path)
	m.duration = m.player.Duration()
	m.elapsed = 0
	m.errMsg = ""
	return true
}

// resizeSmoother re-derives the visible bin count from the display width.
// The smoothed state is per-width, so a resize starts from zero.
func (m *Model) resizeSmoother() {
	bins := m.vizWidth() / barPitch
	if bins < 1 {
		bins = 1
	}
	if bins != m.smoother.Bins() {
		m.smoother = visualizer.NewSmoother(bins)
	}
}

func (m Model) vizWidth() int {
	w := m.width - 4
	if w < barPitch {
		w = barPitch
	}
	return w
}

func (m Model) vizHeight() int {
	h := m.height - chromeLines
	if h < 3 {
		h = 3
	}
	return h
}
