// Package device streams interleaved 16-bit PCM frames to the system audio
// output through oto.
package device

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

const channelCount = 2

// Only one oto context may exist per process.
var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Device owns the audio output. Frames are handed over with Submit only when
// IsReady reports the previous frame fully consumed; the oto player pulls
// from an internal queue on its own goroutine and paces playback.
type Device struct {
	queue      *pcmQueue
	player     *oto.Player
	frameBytes int
	encode     []byte
	volume     float64
	paused     bool
	closed     bool
	log        *logrus.Entry
}

// New opens the audio output for frameSamples-per-channel frames at the given
// sample rate. Failure to initialize the backend is fatal to the caller;
// there is no retry.
func New(sampleRate, frameSamples int, log *logrus.Logger) (*Device, error) {
	ctx, err := initOto(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	frameBytes := frameSamples * channelCount * 2
	d := &Device{
		queue:      newPCMQueue(4 * frameBytes),
		frameBytes: frameBytes,
		encode:     make([]byte, frameBytes),
		volume:     0.8,
		log:        log.WithField("component", "device"),
	}
	d.player = ctx.NewPlayer(d.queue)
	// Keep the player-side buffer to two frames so IsReady tracks actual
	// playback instead of a deep prefetch.
	d.player.SetBufferSize(2 * frameBytes)
	d.player.SetVolume(d.volume)
	d.player.Play()

	d.log.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"frame_bytes": frameBytes,
	}).Debug("audio device ready")
	return d, nil
}

// IsReady reports whether the previously submitted frame has been fully
// consumed by the output, i.e. a new frame may be produced this tick.
func (d *Device) IsReady() bool {
	return d.queue.buffered() == 0
}

// Submit encodes one interleaved stereo frame little-endian and enqueues it.
// The frame is dropped with a log record if the queue lacks space, which only
// happens when the caller ignores IsReady.
func (d *Device) Submit(pcm []int16) {
	if len(pcm)*2 != d.frameBytes {
		panic(fmt.Sprintf("device: frame of %d samples, want %d", len(pcm), d.frameBytes/2))
	}
	encodeFrame(d.encode, pcm)
	if !d.queue.write(d.encode) {
		d.log.Warn("frame dropped: queue full")
	}
}

// TogglePause toggles between play and pause.
func (d *Device) TogglePause() {
	if d.paused {
		d.player.Play()
	} else {
		d.player.Pause()
	}
	d.paused = !d.paused
}

// Paused returns whether output is paused.
func (d *Device) Paused() bool { return d.paused }

// Volume returns the current volume (0.0 to 1.0).
func (d *Device) Volume() float64 { return d.volume }

// SetVolume sets the output volume, clamped to 0.0–1.0.
func (d *Device) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	d.volume = v
	d.player.SetVolume(v)
}

// AdjustVolume adjusts volume by delta.
func (d *Device) AdjustVolume(delta float64) {
	d.SetVolume(d.volume + delta)
}

// Close stops output and releases the player. The oto context itself lives
// for the process.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.queue.close()
	d.player.Pause()
}
