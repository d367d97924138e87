// Package synth renders Standard MIDI Files through a SoundFont synthesizer.
package synth

import (
	"fmt"
	"os"
	"time"

	"github.com/sinshu/go-meltysynth/meltysynth"
	"github.com/sirupsen/logrus"
)

// Synth drives a SoundFont sequencer and hands out one frame of float
// samples per Render call. The SoundFont is parsed once; MIDI files are
// loaded per track. All scratch buffers are allocated at construction.
type Synth struct {
	synthesizer *meltysynth.Synthesizer
	sequencer   *meltysynth.MidiFileSequencer
	midi        *meltysynth.MidiFile
	left32      []float32
	right32     []float32
	sampleRate  int
	rendered    int64
	total       int64
	log         *logrus.Entry
}

// New parses the SoundFont and prepares a sequencer for frameSamples-sized
// frames. A SoundFont that cannot be opened or parsed aborts construction;
// the player treats that as fatal.
func New(soundFontPath string, sampleRate, frameSamples int, log *logrus.Logger) (*Synth, error) {
	sf, err := os.Open(soundFontPath)
	if err != nil {
		return nil, fmt.Errorf("open soundfont: %w", err)
	}
	defer sf.Close()

	soundFont, err := meltysynth.NewSoundFont(sf)
	if err != nil {
		return nil, fmt.Errorf("parse soundfont %s: %w", soundFontPath, err)
	}

	settings := meltysynth.NewSynthesizerSettings(int32(sampleRate))
	synthesizer, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	s := &Synth{
		synthesizer: synthesizer,
		sequencer:   meltysynth.NewMidiFileSequencer(synthesizer),
		left32:      make([]float32, frameSamples),
		right32:     make([]float32, frameSamples),
		sampleRate:  sampleRate,
		log:         log.WithField("component", "synth"),
	}
	s.log.WithFields(logrus.Fields{
		"soundfont":   soundFontPath,
		"sample_rate": sampleRate,
	}).Debug("soundfont loaded")
	return s, nil
}

// Load arms the sequencer with a MIDI file, replacing whatever was playing.
func (s *Synth) Load(midiPath string) error {
	f, err := os.Open(midiPath)
	if err != nil {
		return fmt.Errorf("open midi file: %w", err)
	}
	defer f.Close()

	midi, err := meltysynth.NewMidiFile(f)
	if err != nil {
		return fmt.Errorf("parse midi file %s: %w", midiPath, err)
	}

	s.midi = midi
	s.total = int64(midi.GetLength().Seconds() * float64(s.sampleRate))
	s.rendered = 0
	s.sequencer.Play(midi, false)

	s.log.WithFields(logrus.Fields{
		"midi":     midiPath,
		"duration": s.Duration().Round(time.Millisecond).String(),
	}).Debug("sequencer armed")
	return nil
}

// Render fills left and right with the next frame of samples. Both slices
// must match the frame size fixed at construction. Past the end of the file
// the sequencer renders the release tails, then silence.
func (s *Synth) Render(left, right []float64) {
	if len(left) != len(s.left32) || len(right) != len(s.right32) {
		panic(fmt.Sprintf("synth: frame size %d, got %d/%d", len(s.left32), len(left), len(right)))
	}
	s.sequencer.Render(s.left32, s.right32)
	for i := range left {
		left[i] = float64(s.left32[i])
		right[i] = float64(s.right32[i])
	}
	s.rendered += int64(len(left))
}

// Position returns how much of the current file has been rendered.
func (s *Synth) Position() time.Duration {
	p := time.Duration(s.rendered) * time.Second / time.Duration(s.sampleRate)
	if d := s.Duration(); p > d {
		return d
	}
	return p
}

// Duration returns the length of the current MIDI file.
func (s *Synth) Duration() time.Duration {
	return time.Duration(s.total) * time.Second / time.Duration(s.sampleRate)
}

// Done reports whether the whole file has been rendered, with a grace period
// so note releases are not cut off.
func (s *Synth) Done() bool {
	return s.midi != nil && s.rendered >= s.total+int64(s.sampleRate)/2
}

// Restart rewinds the sequencer to the beginning of the current file.
func (s *Synth) Restart() {
	if s.midi == nil {
		return
	}
	s.sequencer.Play(s.midi, false)
	s.rendered = 0
}
