package flow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"epaper/pkg/command"
	"epaper/pkg/flow/flowtest"
)

func TestSentAccumulates(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	cmds := []command.Command{
		command.Handshake(),
		command.ReadBaudrate(),
		command.SetPallet(command.Black, command.White),
		command.FillRectangle(0, 0, 1, 1),
		command.SleepMode(),
	}

	var sum int
	for _, cmd := range cmds {
		require.False(t, c.Sent(cmd))
		sum += cmd.ResponseBytes()
		require.Equal(t, sum, c.Expected())
	}
	require.Equal(t, 10, c.Expected())
}

func TestSentReportsThreshold(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	rect := command.FillRectangle(0, 0, 1, 1)

	for i := 0; i < DefaultThreshold/2-1; i++ {
		require.False(t, c.Sent(rect))
	}
	require.True(t, c.Sent(rect))
	require.Equal(t, DefaultThreshold, c.Expected())

	c = New(zaptest.NewLogger(t), WithThreshold(4))
	require.False(t, c.Sent(rect))
	require.True(t, c.Sent(rect))
}

func TestDrainSubtractsReceived(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	for i := 0; i < 5; i++ {
		c.Sent(command.ClearScreen())
	}

	p := &flowtest.Port{}
	p.Feed([]byte("OKOK"), []byte("OK"))

	n := c.Drain(p, time.Second)
	require.Equal(t, 6, n)
	require.Equal(t, 4, c.Expected())

	// short read: only what arrived is subtracted
	p.Feed([]byte("O"))
	require.Equal(t, 1, c.Drain(p, time.Second))
	require.Equal(t, 3, c.Expected())
}

func TestDrainReadsAtMostBacklog(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	c.Sent(command.ClearScreen())

	p := &flowtest.Port{}
	p.Feed([]byte("OKOKOK"))

	require.Equal(t, 2, c.Drain(p, time.Second))
	require.Equal(t, 0, c.Expected())
	require.Equal(t, 4, p.Pending())
}

func TestDrainEmptyBacklogIsNoop(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	p := &flowtest.Port{}
	p.Feed([]byte("OK"))

	require.Equal(t, 0, c.Drain(p, time.Second))
	require.Equal(t, 2, p.Pending())
	require.Empty(t, p.Timeouts())
}

func TestDrainUpToClampsAtZero(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	c.Sent(command.ClearScreen())

	p := &flowtest.Port{}
	p.Feed([]byte("OKOKOK"))

	require.Equal(t, 6, c.DrainUpTo(p, 200, time.Second))
	require.Equal(t, 0, c.Expected())
	require.Equal(t, 4, c.Surplus())
}

func TestReadErrorCountsAsEmpty(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	c.Sent(command.ClearScreen())

	p := &flowtest.Port{ReadErr: errors.New("port closed")}
	require.Equal(t, 0, c.Drain(p, time.Second))
	require.Equal(t, 2, c.Expected())
}

func TestSyncFlushesStragglers(t *testing.T) {
	c := New(zaptest.NewLogger(t), WithChunk(4))
	c.Sent(command.RefreshAndUpdate())

	p := &flowtest.Port{}
	p.Feed([]byte("OK"), []byte("OKOKOK"), []byte("OK"))

	require.Equal(t, 10, c.Sync(p, time.Second))
	require.Equal(t, 0, c.Expected())
	require.Equal(t, 8, c.Surplus())
	require.Equal(t, 0, p.Pending())
}

func TestSyncOnQuietPort(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	c.Sent(command.RefreshAndUpdate())

	require.Equal(t, 0, c.Sync(&flowtest.Port{}, time.Second))
	require.Equal(t, 2, c.Expected())
}

func TestPalletRotationScenario(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	c.Sent(command.SetPallet(command.DarkGray, command.White))
	c.Sent(command.SetCurrentDisplayRotation(command.Flip))
	require.Equal(t, 4, c.Expected())

	p := &flowtest.Port{}
	p.Feed([]byte("OKOK"))
	require.Equal(t, 4, c.Drain(p, 2*time.Second))
	require.Equal(t, 0, c.Expected())

	require.Equal(t, 0, c.Drain(p, 2*time.Second))
	require.Equal(t, 0, c.Expected())
}
