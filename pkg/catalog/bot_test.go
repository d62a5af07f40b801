package catalog

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"epaper/pkg/command"
	"epaper/pkg/device/virtual"
)

func newTestControl(t *testing.T, reload Reloader) (*control, *recorder, *virtual.Mocker) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	dev := virtual.Mock(logger, 8, 8)
	r := &recorder{}
	p := NewParams(time.Minute)
	h := NewHistory(3)
	return newControl(dev, NewCycler(c, r, p, h, logger), p, h, reload), r, dev
}

func TestControlList(t *testing.T) {
	c, _, _ := newTestControl(t, nil)
	require.Equal(t, "1. Coca-Cola - 123.333 satoshis\n2. Jolt Cola - 44.400 satoshis", c.list(""))
	require.Len(t, c.handlers(), 9)
}

func TestControlShowAndInfo(t *testing.T) {
	c, r, _ := newTestControl(t, nil)

	require.Equal(t, "Current no selection", c.info(""))
	require.Equal(t, "Usage: /show N", c.show("x"))
	require.Contains(t, c.show("3"), "show failed")

	require.Equal(t, "OK", c.show(" 2 "))
	require.Equal(t, []string{"Jolt Cola"}, r.Drawn())
	require.Contains(t, c.info(""), "Name: Jolt Cola")
	require.Contains(t, c.info(""), "Paused: no")
}

func TestControlPauseResumeInterval(t *testing.T) {
	c, _, _ := newTestControl(t, nil)

	require.Equal(t, "OK", c.pause(""))
	require.True(t, c.params.Paused())
	require.Equal(t, "OK", c.resume(""))
	require.False(t, c.params.Paused())

	require.Equal(t, "1m0s", c.interval(""))
	require.Equal(t, "OK", c.interval("30s"))
	require.Equal(t, 30*time.Second, c.params.Interval())
	require.Contains(t, c.interval("soon"), "change failed")
}

func TestControlReload(t *testing.T) {
	c, _, _ := newTestControl(t, nil)
	require.Equal(t, "Reload not configured", c.reloadCatalog(""))

	c, _, _ = newTestControl(t, func() (*Catalog, error) { return Default(), nil })
	require.Equal(t, "Reloaded, 4 items", c.reloadCatalog(""))
	require.Equal(t, 4, c.cycler.Catalog().Len())

	c, _, _ = newTestControl(t, func() (*Catalog, error) { return nil, errors.New("offline") })
	require.Equal(t, "reload failed: offline", c.reloadCatalog(""))
}

func TestControlSyncAndStats(t *testing.T) {
	c, _, dev := newTestControl(t, nil)
	require.NoError(t, dev.Send(command.ClearScreen()))

	require.Equal(t, "OK, backlog 0", c.sync(""))

	stats := c.stats("")
	require.Contains(t, stats, "Frames: 1")
	require.Contains(t, stats, "Backlog: 0")
}
