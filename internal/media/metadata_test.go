package media

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func buildSMF(t *testing.T, name string, bpm float64) []byte {
	t.Helper()
	s := smf.New()
	var tr smf.Track
	if name != "" {
		tr.Add(0, smf.MetaTrackSequenceName(name))
	}
	if bpm > 0 {
		tr.Add(0, smf.MetaTempo(bpm))
	}
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Close(0)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadMetadataFromTrackName(t *testing.T) {
	data := buildSMF(t, "Prelude in C", 96)

	meta := readMetadata(bytes.NewReader(data), Metadata{Title: "fallback"})
	assert.Equal(t, "Prelude in C", meta.Title)
	assert.Equal(t, 1, meta.Tracks)
	assert.InDelta(t, 96, meta.BPM, 0.5)
}

func TestReadMetadataFallsBackToFileName(t *testing.T) {
	data := buildSMF(t, "", 0)

	meta := readMetadata(bytes.NewReader(data), Metadata{Title: "moonlight"})
	assert.Equal(t, "moonlight", meta.Title)
}

func TestReadMetadataSurvivesGarbage(t *testing.T) {
	meta := readMetadata(strings.NewReader("not a midi file"), Metadata{Title: "x"})
	assert.Equal(t, "x", meta.Title)
	assert.Zero(t, meta.Tracks)
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "gymnopedie", titleFromPath("/music/gymnopedie.mid"))
	assert.Equal(t, "noext", titleFromPath("noext"))
}
