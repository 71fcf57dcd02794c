package dio

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantrylab/catchpoint/internal/monitoring"
	"github.com/gantrylab/catchpoint/internal/timeutil"
)

// readCountToken cancels once the underlying input has been polled n times.
type readCountToken struct {
	in *ScriptedInput
	n  int
}

func (t *readCountToken) Requested() bool { return t.in.Reads() >= t.n }

type staticToken bool

func (t staticToken) Requested() bool { return bool(t) }

func TestWaitForTriggerReturnsTimestamp(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(start)
	m := NewMonitor(clock, time.Millisecond)

	in := TriggerAfter(3)
	got := m.WaitForTrigger("gate1", in, time.Second, staticToken(false))

	require.Equal(t, Triggered, got.Outcome)
	// Three non-triggers, each followed by a 1 ms sleep.
	assert.Equal(t, start.Add(3*time.Millisecond), got.At)
	assert.Equal(t, 4, in.Reads())
}

func TestWaitForTriggerTimesOut(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	m := NewMonitor(clock, time.Millisecond)

	in := NewScriptedInput() // reads false forever
	got := m.WaitForTrigger("gate1", in, 50*time.Millisecond, staticToken(false))

	require.Equal(t, TimedOut, got.Outcome)
	assert.True(t, got.At.IsZero())
	// The wait consumed exactly the timeout in virtual time, no more.
	assert.Equal(t, 50*time.Millisecond, clock.Since(time.Unix(0, 0)))
}

func TestWaitForTriggerCancelledWithinOneInterval(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	m := NewMonitor(clock, time.Millisecond)

	in := NewScriptedInput()
	tok := &readCountToken{in: in, n: 5}
	got := m.WaitForTrigger("gate2", in, time.Hour, tok)

	require.Equal(t, Cancelled, got.Outcome)
	// Cancellation observed on the very next poll boundary, not after the
	// full timeout.
	assert.Equal(t, 5, in.Reads())
	assert.Less(t, clock.Since(time.Unix(0, 0)), 10*time.Millisecond)
}

func TestWaitForTriggerCancelledBeforeFirstPoll(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	m := NewMonitor(clock, time.Millisecond)

	in := NewScriptedInput(Step{Value: true})
	got := m.WaitForTrigger("gate1", in, time.Second, staticToken(true))

	require.Equal(t, Cancelled, got.Outcome)
	assert.Zero(t, in.Reads(), "no poll once shutdown is requested")
}

func TestWaitForTriggerRetriesReadErrors(t *testing.T) {
	var mu sync.Mutex
	var logs []string
	monitoring.SetLogger(func(format string, v ...any) {
		mu.Lock()
		logs = append(logs, fmt.Sprintf(format, v...))
		mu.Unlock()
	})
	defer monitoring.SetLogger(nil)

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	m := NewMonitor(clock, time.Millisecond)

	in := NewScriptedInput(
		Step{Err: errors.New("bus glitch")},
		Step{Err: errors.New("bus glitch")},
		Step{Value: true},
	)
	got := m.WaitForTrigger("gate1", in, time.Second, staticToken(false))

	require.Equal(t, Triggered, got.Outcome)
	assert.Equal(t, time.Unix(0, 0).Add(2*time.Millisecond), got.At)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0], "gate1")
	assert.Contains(t, logs[0], "bus glitch")
}

func TestNewMonitorDefaultsInterval(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	m := NewMonitor(clock, 0)

	in := TriggerAfter(1)
	got := m.WaitForTrigger("gate1", in, time.Second, nil)
	require.Equal(t, Triggered, got.Outcome)
	assert.Equal(t, []time.Duration{DefaultPollInterval}, clock.Sleeps())
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "triggered", Triggered.String())
	assert.Equal(t, "timed out", TimedOut.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
