package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedExt(t *testing.T) {
	for _, ext := range []string{".mid", ".MIDI", ".rmi", ".kar"} {
		assert.True(t, IsSupportedExt(ext), ext)
	}
	for _, ext := range []string{".mp3", ".sf2", ".wav", ""} {
		assert.False(t, IsSupportedExt(ext), ext)
	}
}

func TestIsSoundFontExt(t *testing.T) {
	assert.True(t, IsSoundFontExt(".sf2"))
	assert.True(t, IsSoundFontExt(".SF2"))
	assert.False(t, IsSoundFontExt(".sf3"))
}

func TestIsPlaylistExt(t *testing.T) {
	assert.True(t, IsPlaylistExt(".m3u"))
	assert.True(t, IsPlaylistExt(".M3U8"))
	assert.True(t, IsPlaylistExt(".pls"))
	assert.False(t, IsPlaylistExt(".mid"))
}
