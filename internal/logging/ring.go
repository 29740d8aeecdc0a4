package logging

import "sync"

// lineRing is a thread-safe circular buffer of text lines.
type lineRing struct {
	buf  []string
	size int
	w    int // write position
	len  int // current fill level
	mu   sync.Mutex
}

func newLineRing(size int) *lineRing {
	size = max(size, 1)
	return &lineRing{
		buf:  make([]string, size),
		size: size,
	}
}

// push appends a line, overwriting the oldest one when full.
func (rb *lineRing) push(line string) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.buf[rb.w] = line
	rb.w = (rb.w + 1) % rb.size
	if rb.len < rb.size {
		rb.len++
	}
}

// last returns up to n most recent lines, oldest first.
func (rb *lineRing) last(n int) []string {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if n > rb.len {
		n = rb.len
	}
	if n <= 0 {
		return nil
	}

	out := make([]string, n)
	start := (rb.w - n + rb.size) % rb.size
	for i := range n {
		out[i] = rb.buf[(start+i)%rb.size]
	}
	return out
}

func (rb *lineRing) clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	clear(rb.buf)
	rb.w = 0
	rb.len = 0
}
