// Package media handles MIDI file detection, metadata, and playlists.
package media

import "strings"

var midiExts = map[string]bool{
	".mid":  true,
	".midi": true,
	".rmi":  true,
	".kar":  true,
}

var playlistExts = map[string]bool{
	".m3u":  true,
	".m3u8": true,
	".pls":  true,
}

// IsSupportedExt returns true if the extension is a playable MIDI format.
func IsSupportedExt(ext string) bool {
	return midiExts[strings.ToLower(ext)]
}

// IsSoundFontExt returns true if the extension is a SoundFont bank.
func IsSoundFontExt(ext string) bool {
	return strings.ToLower(ext) == ".sf2"
}

// IsPlaylistExt returns true if the extension is a supported playlist format.
func IsPlaylistExt(ext string) bool {
	return playlistExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of playable formats.
func SupportedExtsList() string {
	return ".mid, .midi, .rmi, .kar"
}
