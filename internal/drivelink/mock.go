package drivelink

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// TestablePort implements Porter with scripted replies for tests. Each
// request line written to the port consumes the next queued reply.
type TestablePort struct {
	mu sync.Mutex

	// WriteBuffer captures every byte written to the port.
	WriteBuffer bytes.Buffer

	replies []string

	// WriteError is returned by the next Write if set.
	WriteError error

	// Closed indicates whether Close was called.
	Closed bool

	pending bytes.Buffer
}

// NewTestablePort returns a port that answers requests with the given reply
// lines in order. When the script runs out, reads behave like a timed-out
// port (io.EOF).
func NewTestablePort(replies ...string) *TestablePort {
	return &TestablePort{replies: replies}
}

// Write records the request and stages the next scripted reply.
func (p *TestablePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.WriteError != nil {
		return 0, p.WriteError
	}
	p.WriteBuffer.Write(b)
	if len(p.replies) > 0 {
		p.pending.WriteString(p.replies[0] + "\n")
		p.replies = p.replies[1:]
	}
	return len(b), nil
}

// Read returns staged reply bytes, or io.EOF when nothing is staged.
func (p *TestablePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending.Len() == 0 {
		return 0, io.EOF
	}
	return p.pending.Read(b)
}

// Close marks the port closed.
func (p *TestablePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

// SetReadTimeout is a no-op on the testable port.
func (p *TestablePort) SetReadTimeout(time.Duration) error { return nil }

// Requests returns the request lines written so far.
func (p *TestablePort) Requests() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	raw := p.WriteBuffer.String()
	var out []string
	for _, line := range bytes.Split([]byte(raw), []byte("\n")) {
		if len(line) > 0 {
			out = append(out, string(line))
		}
	}
	return out
}
