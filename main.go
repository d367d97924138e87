package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/olivier-w/climid/internal/audio"
	"github.com/olivier-w/climid/internal/device"
	"github.com/olivier-w/climid/internal/export"
	"github.com/olivier-w/climid/internal/media"
	"github.com/olivier-w/climid/internal/queue"
	"github.com/olivier-w/climid/internal/synth"
	"github.com/olivier-w/climid/internal/ui"
)

func main() {
	sfPath := flag.String("sf", "", "SoundFont (.sf2) path (default: $CLIMID_SOUNDFONT or a system GM bank)")
	exportPath := flag.String("export", "", "render to a WAV file instead of playing")
	debugPath := flag.String("debug", "", "write a debug log to this file")
	flag.Usage = usage
	flag.Parse()

	log := newLogger(*debugPath)

	arg := flag.Arg(0)
	if arg == "" {
		browser := ui.NewBrowser()
		if browser.HasError() {
			fatal(browser.Error())
		}
		p := tea.NewProgram(browser, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			fatal(err)
		}
		bm, ok := finalModel.(ui.BrowserModel)
		if !ok {
			fatal(fmt.Errorf("unexpected model type from browser"))
		}
		result := bm.Result()
		if result.Cancelled {
			os.Exit(0)
		}
		arg = result.Path
	}

	tracks, startIdx, err := resolveTracks(arg)
	if err != nil {
		fatal(err)
	}

	soundFont, err := resolveSoundFont(*sfPath)
	if err != nil {
		fatal(err)
	}

	s, err := synth.New(soundFont, audio.SampleRate, audio.FrameSize, log)
	if err != nil {
		fatal(err)
	}
	if err := s.Load(tracks[startIdx].Path); err != nil {
		fatal(err)
	}
	if *exportPath != "" {
		if err := export.WriteWAV(*exportPath, s, log); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", *exportPath)
		return
	}

	meta := media.ReadMetadata(tracks[startIdx].Path)

	d, err := device.New(audio.SampleRate, audio.FrameSize, log)
	if err != nil {
		fatal(err)
	}
	defer d.Close()

	var model ui.Model
	if len(tracks) > 1 {
		tracks[startIdx].State = queue.Playing
		q := queue.New(tracks)
		q.SetCurrentIndex(startIdx)
		model = ui.NewWithQueue(s, d, meta, q, log)
	} else {
		model = ui.New(s, d, meta, log)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: climid [flags] <file.mid|playlist.m3u>\n\n")
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// newLogger returns a silent logger unless a debug file was requested.
func newLogger(path string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	if path == "" {
		return log
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open debug log: %v\n", err)
		return log
	}
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
	return log
}

// resolveTracks turns the command-line argument into a playlist: a .m3u/.pls
// file expands to its entries, a MIDI file picks up its directory siblings.
func resolveTracks(arg string) ([]queue.Track, int, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory", arg)
	}

	ext := strings.ToLower(filepath.Ext(arg))
	switch {
	case media.IsPlaylistExt(ext):
		entries, err := media.ParsePlaylist(arg)
		if err != nil {
			return nil, 0, err
		}
		paths := media.FilterPlayable(entries)
		if len(paths) == 0 {
			return nil, 0, fmt.Errorf("playlist contains no playable entries")
		}
		return tracksFromPaths(paths), 0, nil

	case media.IsSupportedExt(ext):
		if siblings := scanMIDIFiles(arg); siblings != nil {
			tracks := tracksFromPaths(siblings)
			startIdx := 0
			absPath, _ := filepath.Abs(arg)
			for i, t := range tracks {
				if t.Path == absPath {
					startIdx = i
				}
			}
			return tracks, startIdx, nil
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			abs = arg
		}
		return tracksFromPaths([]string{abs}), 0, nil

	default:
		return nil, 0, fmt.Errorf("unsupported format %s (supported: %s)", ext, media.SupportedExtsList())
	}
}

func tracksFromPaths(paths []string) []queue.Track {
	tracks := make([]queue.Track, len(paths))
	for i, p := range paths {
		tracks[i] = queue.Track{
			Title: strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			Path:  p,
			State: queue.Ready,
		}
	}
	return tracks
}

// scanMIDIFiles returns all MIDI files in the same directory as path, sorted
// alphabetically (case-insensitive). Returns nil if fewer than 2 files found.
func scanMIDIFiles(path string) []string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	dir := filepath.Dir(absPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if media.IsSupportedExt(strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	if len(files) < 2 {
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files
}

// soundFontSearchPaths are common locations for a General MIDI bank.
var soundFontSearchPaths = []string{
	"/usr/share/sounds/sf2/default-GM.sf2",
	"/usr/share/sounds/sf2/FluidR3_GM.sf2",
	"/usr/share/soundfonts/default.sf2",
	"/usr/share/soundfonts/FluidR3_GM.sf2",
	"/usr/local/share/soundfonts/default.sf2",
}

func resolveSoundFont(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv("CLIMID_SOUNDFONT"); env != "" {
		return env, nil
	}
	for _, p := range soundFontSearchPaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no SoundFont found: pass -sf, set CLIMID_SOUNDFONT, or install a GM bank")
}
