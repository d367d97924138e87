package device

import (
	"io"
	"sync"
)

// pcmQueue is a fixed-capacity byte ring between the submitting tick loop and
// the output library's reader goroutine. Reads block until data arrives so
// playback pacing comes from the device draining, not from silence padding.
type pcmQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	r      int
	w      int
	n      int
	closed bool
}

func newPCMQueue(capacity int) *pcmQueue {
	q := &pcmQueue{buf: make([]byte, capacity)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// write enqueues p whole, or reports false when the free space is short.
// Frames are submitted only after the queue drained, so a refusal means the
// caller is ignoring readiness.
func (q *pcmQueue) write(p []byte) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || len(p) > len(q.buf)-q.n {
		return false
	}
	for _, b := range p {
		q.buf[q.w] = b
		q.w = (q.w + 1) % len(q.buf)
	}
	q.n += len(p)
	q.cond.Broadcast()
	return true
}

// Read blocks until data is available, then drains up to len(p) bytes.
// Returns io.EOF once the queue is closed and empty.
func (q *pcmQueue) Read(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.n == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.n == 0 {
		return 0, io.EOF
	}
	n := min(len(p), q.n)
	for i := 0; i < n; i++ {
		p[i] = q.buf[q.r]
		q.r = (q.r + 1) % len(q.buf)
	}
	q.n -= n
	return n, nil
}

// buffered returns the byte count not yet pulled by the reader.
func (q *pcmQueue) buffered() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}

func (q *pcmQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}
