package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Metadata describes a MIDI file for display. Missing fields stay zero; the
// synthesizer does not need any of this to play the file.
type Metadata struct {
	Title  string
	Format uint16
	Tracks int
	BPM    float64
}

// ReadMetadata extracts display metadata from a Standard MIDI File. Parse
// failures fall back to the file name as title; metadata is decorative and
// must never block playback.
func ReadMetadata(path string) Metadata {
	meta := Metadata{Title: titleFromPath(path)}

	f, err := os.Open(path)
	if err != nil {
		return meta
	}
	defer f.Close()

	return readMetadata(f, meta)
}

func readMetadata(r io.Reader, meta Metadata) Metadata {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return meta
	}

	meta.Format = s.Format()
	meta.Tracks = len(s.Tracks)

	// Title: first track-name meta event. Tempo: first tempo event.
	var title string
	var bpm float64
	for _, track := range s.Tracks {
		for _, ev := range track {
			var text string
			if meta.BPM == 0 && ev.Message.GetMetaTempo(&bpm) {
				meta.BPM = bpm
			}
			if title == "" && ev.Message.GetMetaTrackName(&text) && strings.TrimSpace(text) != "" {
				title = strings.TrimSpace(text)
			}
			if title != "" && meta.BPM != 0 {
				break
			}
		}
		if title != "" && meta.BPM != 0 {
			break
		}
	}
	if title != "" {
		meta.Title = title
	}
	return meta
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
