// Package operator reads launch parameters from the person running the rig.
//
// The read is the one deliberately unbounded block in the system: it happens
// between cycles, never inside a time-critical section.
package operator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ShutdownAngle is the documented sentinel: entering it asks the sequencer
// to finish up and shut down gracefully, distinct from the asynchronous
// cancellation path.
const ShutdownAngle = 1.23

// ErrClosed is returned when the input source is exhausted; callers treat it
// as a shutdown request.
var ErrClosed = errors.New("operator input closed")

// AngleSource supplies one ramp angle per launch cycle.
type AngleSource interface {
	// NextAngle blocks until the operator enters an angle in degrees.
	NextAngle() (float64, error)
}

// Console reads angles line by line from an io.Reader, prompting on w.
type Console struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewConsole returns a Console reading from r and prompting on w. A nil w
// suppresses prompts.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{scanner: bufio.NewScanner(r), prompt: w}
}

// NextAngle prompts and blocks for one angle. Unparseable lines re-prompt;
// EOF returns ErrClosed.
func (c *Console) NextAngle() (float64, error) {
	for {
		if c.prompt != nil {
			fmt.Fprintf(c.prompt, "ramp angle in degrees (%v to shut down): ", ShutdownAngle)
		}
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return 0, fmt.Errorf("read operator input: %w", err)
			}
			return 0, ErrClosed
		}
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}
		angle, err := strconv.ParseFloat(line, 64)
		if err != nil {
			if c.prompt != nil {
				fmt.Fprintf(c.prompt, "not a number: %q\n", line)
			}
			continue
		}
		return angle, nil
	}
}

// Scripted is a test AngleSource returning a fixed list of angles, then
// ErrClosed.
type Scripted struct {
	angles []float64
	idx    int
}

// NewScripted returns a Scripted source over the given angles.
func NewScripted(angles ...float64) *Scripted {
	return &Scripted{angles: angles}
}

// NextAngle pops the next scripted angle.
func (s *Scripted) NextAngle() (float64, error) {
	if s.idx >= len(s.angles) {
		return 0, ErrClosed
	}
	a := s.angles[s.idx]
	s.idx++
	return a, nil
}
