package drivelink

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantrylab/catchpoint/internal/motion"
)

func TestLinkCommandFraming(t *testing.T) {
	t.Parallel()

	port := NewTestablePort("OK", "OK", "OK", "OK")
	link := NewLink(port)

	require.NoError(t, link.Move(0, motion.Profile{
		Target: 30, Velocity: 15, Accel: 30, Decel: 30, JerkPercent: 50,
	}))
	require.NoError(t, link.SetEnabled(2, true))
	require.NoError(t, link.SetEnabled(2, false))
	require.NoError(t, link.SetCommandPosition(1, 0))

	want := []string{
		"MV 0 30.000000 15.000000 30.000000 30.000000 50.000000",
		"EN 2 1",
		"EN 2 0",
		"SP 1 0.000000",
	}
	if diff := cmp.Diff(want, port.Requests()); diff != "" {
		t.Errorf("request transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkConfigureFraming(t *testing.T) {
	t.Parallel()

	port := NewTestablePort("OK")
	link := NewLink(port)

	require.NoError(t, link.Configure(1, motion.AxisConfig{
		CountsPerUnit:        67108864,
		ErrorLimitTrigger:    0.5,
		DisableOnErrorLimit:  false,
		LimitTriggerState:    1,
		LimitDurationSamples: 2,
	}))

	reqs := port.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "CF 1 67108864 0.500 0 1 2", reqs[0])
}

func TestLinkErrReply(t *testing.T) {
	t.Parallel()

	port := NewTestablePort("ERR profile rejected")
	link := NewLink(port)

	err := link.Move(0, motion.Profile{Target: 9999})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile rejected")
}

func TestLinkUnexpectedReply(t *testing.T) {
	t.Parallel()

	port := NewTestablePort("WAT")
	link := NewLink(port)

	err := link.SetEnabled(0, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected reply "WAT"`)
}

func TestLinkNoReply(t *testing.T) {
	t.Parallel()

	port := NewTestablePort() // no scripted replies: reads hit EOF
	link := NewLink(port)

	err := link.SetEnabled(0, false)
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestLinkWriteError(t *testing.T) {
	t.Parallel()

	port := NewTestablePort("OK")
	port.WriteError = errors.New("port gone")
	link := NewLink(port)

	err := link.SetCommandPosition(0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port gone")
}

func TestBridgeInputRead(t *testing.T) {
	t.Parallel()

	port := NewTestablePort("OK 0", "OK 1", "OK 7")
	link := NewLink(port)
	in := link.Input(3)

	v, err := in.Read()
	require.NoError(t, err)
	assert.False(t, v)

	v, err = in.Read()
	require.NoError(t, err)
	assert.True(t, v)

	_, err = in.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected state "7"`)

	assert.Equal(t, []string{"RD 3", "RD 3", "RD 3"}, port.Requests())
}

func TestLinkClose(t *testing.T) {
	t.Parallel()

	port := NewTestablePort()
	link := NewLink(port)
	require.NoError(t, link.Close())
	assert.True(t, port.Closed)
}
