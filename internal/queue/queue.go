// Package queue holds the ordered track list for playlist playback.
package queue

import "math/rand"

// TrackState represents the playback state of a track.
type TrackState int

const (
	Ready TrackState = iota
	Playing
	Done
	Failed
)

// Track represents a single MIDI file in the playlist.
type Track struct {
	Title string
	Path  string
	State TrackState
}

// Queue manages an ordered list of tracks. It is only mutated from the UI's
// single-threaded update loop.
type Queue struct {
	tracks       []Track
	current      int
	shuffleOrder []int // maps shuffle position to original track index
	shufflePos   int
	shuffled     bool
}

// New creates a Queue from the given tracks.
func New(tracks []Track) *Queue {
	return &Queue{tracks: tracks}
}

// Current returns a pointer to the currently playing track, or nil if empty.
func (q *Queue) Current() *Track {
	return q.Track(q.current)
}

// Next returns the next track in playback order, honoring shuffle, or nil at
// the end.
func (q *Queue) Next() *Track {
	if q.shuffled {
		if q.shufflePos+1 >= len(q.shuffleOrder) {
			return nil
		}
		return q.Track(q.shuffleOrder[q.shufflePos+1])
	}
	return q.Track(q.current + 1)
}

// Advance moves the current index forward by one in playback order.
// Returns false if already at the end.
func (q *Queue) Advance() bool {
	if q.shuffled {
		if q.shufflePos+1 >= len(q.shuffleOrder) {
			return false
		}
		q.shufflePos++
		q.current = q.shuffleOrder[q.shufflePos]
		return true
	}
	if q.current+1 >= len(q.tracks) {
		return false
	}
	q.current++
	return true
}

// Previous moves the current index back by one in playback order.
// Returns false if already at the start.
func (q *Queue) Previous() bool {
	if q.shuffled {
		if q.shufflePos <= 0 {
			return false
		}
		q.shufflePos--
		q.current = q.shuffleOrder[q.shufflePos]
		return true
	}
	if q.current <= 0 {
		return false
	}
	q.current--
	return true
}

// Peek returns up to n tracks after the current one in original order.
func (q *Queue) Peek(n int) []Track {
	start := q.current + 1
	if start >= len(q.tracks) {
		return nil
	}
	end := min(start+n, len(q.tracks))
	result := make([]Track, end-start)
	copy(result, q.tracks[start:end])
	return result
}

// Len returns the total number of tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// CurrentIndex returns the zero-based index of the current track.
func (q *Queue) CurrentIndex() int {
	return q.current
}

// SetCurrentIndex sets the current track index directly, syncing the shuffle
// position when shuffle is active.
func (q *Queue) SetCurrentIndex(i int) {
	if i < 0 || i >= len(q.tracks) {
		return
	}
	q.current = i
	if q.shuffled {
		for pos, idx := range q.shuffleOrder {
			if idx == i {
				q.shufflePos = pos
				return
			}
		}
	}
}

// SetTrackState sets the state of the track at the given index.
func (q *Queue) SetTrackState(i int, state TrackState) {
	if i >= 0 && i < len(q.tracks) {
		q.tracks[i].State = state
	}
}

// Track returns a pointer to the track at the given index, or nil if out of
// range.
func (q *Queue) Track(i int) *Track {
	if i < 0 || i >= len(q.tracks) {
		return nil
	}
	return &q.tracks[i]
}

// IsShuffled returns whether shuffle mode is active.
func (q *Queue) IsShuffled() bool {
	return q.shuffled
}

// EnableShuffle activates shuffle mode. The current track stays at position
// zero of the shuffle order; the rest is a Fisher-Yates permutation.
func (q *Queue) EnableShuffle() {
	n := len(q.tracks)
	if n <= 1 {
		return
	}
	q.shuffled = true
	order := make([]int, 0, n)
	order = append(order, q.current)
	for i := 0; i < n; i++ {
		if i != q.current {
			order = append(order, i)
		}
	}
	rest := order[1:]
	for i := len(rest) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
	q.shuffleOrder = order
	q.shufflePos = 0
}

// DisableShuffle deactivates shuffle mode, keeping the current track.
func (q *Queue) DisableShuffle() {
	q.shuffled = false
	q.shuffleOrder = nil
	q.shufflePos = 0
}
