// Package export renders a MIDI file offline to a 16-bit stereo WAV.
package export

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/olivier-w/climid/internal/audio"
)

// FrameRenderer produces stereo float frames until the source is exhausted.
// The synth satisfies this.
type FrameRenderer interface {
	Render(left, right []float64)
	Done() bool
}

// maxFrames caps an export at roughly two hours so a MIDI file with a broken
// end-of-track cannot fill the disk.
const maxFrames = 2 * 60 * 60 * audio.SampleRate / audio.FrameSize

// WriteWAV renders src to completion through the same quantization path used
// for playback and writes the result as a 16-bit interleaved stereo WAV.
func WriteWAV(path string, src FrameRenderer, log *logrus.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, audio.SampleRate, 16, 2, 1)

	left := make([]float64, audio.FrameSize)
	right := make([]float64, audio.FrameSize)
	proc := audio.NewFrameProcessor()
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: audio.SampleRate},
		Data:           make([]int, 2*audio.FrameSize),
		SourceBitDepth: 16,
	}

	frames := 0
	for !src.Done() {
		if frames >= maxFrames {
			log.WithField("frames", frames).Warn("export cap reached, truncating")
			break
		}
		src.Render(left, right)
		proc.Process(left, right)
		for i, s := range proc.PCM() {
			buf.Data[i] = int(s)
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("write wav frame: %w", err)
		}
		frames++
	}

	// The encoder only starts the data chunk on the first Write; a WAV with
	// zero frames would come out unreadable, so refuse it instead.
	if frames == 0 {
		os.Remove(path)
		return fmt.Errorf("nothing to render: source was exhausted before the first frame")
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	log.WithFields(logrus.Fields{
		"path":   path,
		"frames": frames,
	}).Debug("export complete")
	return nil
}
