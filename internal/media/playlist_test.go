package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParsePlaylistM3U(t *testing.T) {
	dir := t.TempDir()
	pl := writeFile(t, dir, "set.m3u", "#EXTM3U\n#EXTINF:-1,one\none.mid\n\n/abs/two.mid\n")

	entries, err := ParsePlaylist(pl)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "one.mid"),
		filepath.Clean("/abs/two.mid"),
	}, entries)
}

func TestParsePlaylistPLS(t *testing.T) {
	dir := t.TempDir()
	pl := writeFile(t, dir, "set.pls", "[playlist]\nFile1=one.mid\nTitle1=One\nFile2=sub/two.mid\nNumberOfEntries=2\n")

	entries, err := ParsePlaylist(pl)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "one.mid"),
		filepath.Join(dir, "sub", "two.mid"),
	}, entries)
}

func TestParsePlaylistRejectsUnknownExt(t *testing.T) {
	_, err := ParsePlaylist("list.txt")
	assert.Error(t, err)
}

func TestFilterPlayable(t *testing.T) {
	dir := t.TempDir()
	mid := writeFile(t, dir, "a.mid", "")
	writeFile(t, dir, "b.mp3", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.mid"), 0o755))

	got := FilterPlayable([]string{
		mid,
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "c.mid"),
		filepath.Join(dir, "missing.mid"),
	})
	assert.Equal(t, []string{mid}, got)
}
