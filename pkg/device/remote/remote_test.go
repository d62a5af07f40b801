package remote

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"epaper/pkg/command"
	"epaper/pkg/device/virtual"
)

func TestProxyRoundTrip(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dev := virtual.Mock(logger, 20, 20)

	handler, err := Handler(dev)
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	client, err := New(srv.Listener.Addr().String(), logger)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Send(command.ClearScreen()))
	require.NoError(t, client.Send(command.FillRectangle(1, 1, 4, 4)))
	require.NoError(t, client.Poll(200, time.Second))
	require.NoError(t, client.Drain(time.Second))
	require.NoError(t, client.Sync(time.Second))

	require.Equal(t, 0, client.Backlog())
	stats := client.Stats()
	require.Equal(t, 2, stats.Frames)
	require.Equal(t, command.ClearScreen().Len()+command.FillRectangle(1, 1, 4, 4).Len(), stats.Sent)

	require.Equal(t, 1, dev.Count(command.OpFillRectangle))
	require.Equal(t, uint8(0x00), dev.Snapshot().GrayAt(2, 2).Y)
}
