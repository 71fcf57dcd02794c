package drivelink

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gantrylab/catchpoint/internal/dio"
	"github.com/gantrylab/catchpoint/internal/motion"
)

// ErrEmptyReply is returned when the bridge closes or times out without
// answering a request.
var ErrEmptyReply = errors.New("no reply from drive bridge")

// Link is a synchronous client for the drive bridge. It implements
// motion.Controller and exposes the bridge's digital inputs. Safe for
// concurrent use: a command mutex serialises request/reply pairs, so an
// emergency disable issued from the signal path simply queues behind any
// move in flight.
type Link struct {
	mu   sync.Mutex
	port Porter
	r    *bufio.Reader
}

// NewLink wraps an open port.
func NewLink(port Porter) *Link {
	return &Link{port: port, r: bufio.NewReader(port)}
}

// roundTrip writes one request line and reads one reply line. Replies are
// "OK", "OK <value>", or "ERR <message>".
func (l *Link) roundTrip(format string, args ...any) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	req := fmt.Sprintf(format, args...) + "\n"
	n, err := l.port.Write([]byte(req))
	if err != nil {
		return "", fmt.Errorf("write %q: %w", strings.TrimSpace(req), err)
	}
	if n != len(req) {
		return "", fmt.Errorf("short write %d/%d for %q", n, len(req), strings.TrimSpace(req))
	}

	line, err := l.r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: %v", ErrEmptyReply, err)
	}
	reply := strings.TrimSpace(line)

	switch {
	case reply == "OK":
		return "", nil
	case strings.HasPrefix(reply, "OK "):
		return strings.TrimPrefix(reply, "OK "), nil
	case strings.HasPrefix(reply, "ERR "):
		return "", fmt.Errorf("drive bridge: %s", strings.TrimPrefix(reply, "ERR "))
	default:
		return "", fmt.Errorf("unexpected reply %q", reply)
	}
}

// Move starts an S-curve move on the axis.
func (l *Link) Move(axis motion.AxisID, p motion.Profile) error {
	_, err := l.roundTrip("MV %d %.6f %.6f %.6f %.6f %.6f",
		axis, p.Target, p.Velocity, p.Accel, p.Decel, p.JerkPercent)
	return err
}

// SetEnabled switches the axis amplifier.
func (l *Link) SetEnabled(axis motion.AxisID, on bool) error {
	state := 0
	if on {
		state = 1
	}
	_, err := l.roundTrip("EN %d %d", axis, state)
	return err
}

// SetCommandPosition overwrites the axis command position.
func (l *Link) SetCommandPosition(axis motion.AxisID, pos float64) error {
	_, err := l.roundTrip("SP %d %.6f", axis, pos)
	return err
}

// Configure applies the one-time axis setup.
func (l *Link) Configure(axis motion.AxisID, cfg motion.AxisConfig) error {
	disable := 0
	if cfg.DisableOnErrorLimit {
		disable = 1
	}
	_, err := l.roundTrip("CF %d %d %.3f %d %d %d",
		axis, cfg.CountsPerUnit, cfg.ErrorLimitTrigger, disable,
		cfg.LimitTriggerState, cfg.LimitDurationSamples)
	return err
}

// Close closes the underlying port.
func (l *Link) Close() error {
	return l.port.Close()
}

// Input returns the bridge digital input on the given channel as a
// dio.Input.
func (l *Link) Input(channel int) dio.Input {
	return bridgeInput{link: l, channel: channel}
}

type bridgeInput struct {
	link    *Link
	channel int
}

// Read polls the input channel. "RD <ch>" answers "OK 0" or "OK 1".
func (b bridgeInput) Read() (bool, error) {
	val, err := b.link.roundTrip("RD %d", b.channel)
	if err != nil {
		return false, err
	}
	switch val {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("input %d: unexpected state %q", b.channel, val)
	}
}
