// Package drivelink speaks the line protocol of the motion-drive bridge: a
// serial-attached board that owns the three axis amplifiers and the two gate
// opto-sensors. One request line out, one reply line back.
package drivelink

import (
	"io"
	"time"

	"go.bug.st/serial"
)

// Porter is the minimal serial port surface the link needs. The abstraction
// enables unit testing without real hardware.
type Porter interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// PortOptions holds the serial parameters for the drive bridge.
type PortOptions struct {
	BaudRate    int
	ReadTimeout time.Duration
}

// DefaultPortOptions returns the bridge's factory settings.
func DefaultPortOptions() PortOptions {
	return PortOptions{
		BaudRate:    115200,
		ReadTimeout: 500 * time.Millisecond,
	}
}

// Open opens the serial device at path and wraps it in a Link.
func Open(path string, opts PortOptions) (*Link, error) {
	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	if opts.ReadTimeout > 0 {
		if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
			port.Close()
			return nil, err
		}
	}
	return NewLink(port), nil
}
