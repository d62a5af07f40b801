package display

import (
	"image"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"epaper/pkg/catalog"
	"epaper/pkg/command"
	"epaper/pkg/device/virtual"
	"epaper/pkg/device/waveshare"
	"epaper/pkg/flow/flowtest"
	"epaper/pkg/placement"
	"epaper/pkg/raster"
)

// spy records the opcodes sent and the read calls made on a mock panel.
type spy struct {
	*virtual.Mocker
	ops    []command.Opcode
	polls  []int
	drains []time.Duration
}

func (s *spy) Send(cmd command.Command) error {
	s.ops = append(s.ops, cmd.Opcode())
	return s.Mocker.Send(cmd)
}

func (s *spy) Poll(size int, timeout time.Duration) error {
	s.polls = append(s.polls, size)
	return s.Mocker.Poll(size, timeout)
}

func (s *spy) Drain(timeout time.Duration) error {
	s.drains = append(s.drains, timeout)
	return s.Mocker.Drain(timeout)
}

func newSpy(t *testing.T) *spy {
	return &spy{Mocker: virtual.Mock(zaptest.NewLogger(t), waveshare.Width, waveshare.Height)}
}

var soda = catalog.Selection{
	FirstLine:  "Jolt Cola",
	SecondLine: "All The Sugar And Twice the Caffeine",
	Price:      44.444,
	Invoice:    "lnbc444440p1pw9y5g2pp52g46yz85a65s3mnh485h03gctpum0tmx32qlke3qcna3wgvv92ysdq0ffhkcapqgdhkccgcqp2rzjqfffmd5l6t4axyn0keh6lg35ls65g3m6y02snl5na53fhv8f9e8mszpg8sqqwhsqqyqqqqqfqqqqqfcqjqxmthlx46s5rvwdf3s5y3gh7emnsvzd5xwvw8rq8jeh3c6mjsys6pewxf79svezp9pug8mm53da0yqsgf4gztdvyhnluz8jvcnz0jukqqpf38yg",
}

func TestSetup(t *testing.T) {
	s := newSpy(t)
	d := New(s, zaptest.NewLogger(t), WithSettle(0))

	require.NoError(t, d.Setup())
	require.Equal(t, []command.Opcode{command.OpHandshake, command.OpSetCurrentDisplayRotation}, s.ops)
	require.Equal(t, []time.Duration{DefaultSetupTimeout}, s.drains)
}

func TestDrawSelectionSequence(t *testing.T) {
	s := newSpy(t)
	d := New(s, zaptest.NewLogger(t), WithPollEvery(0, 0))

	require.NoError(t, d.DrawSelection(soda))

	grid, err := raster.FromQR(soda.Invoice, qrcode.Medium)
	require.NoError(t, err)
	rects := 0
	for range grid.Rects(1, 0, 0, raster.Background) {
		rects++
	}

	require.Equal(t, command.OpClearScreen, s.ops[0])
	require.Equal(t, command.OpSetPallet, s.ops[1])
	require.Equal(t, command.OpSetPallet, s.ops[2+rects])

	tail := s.ops[3+rects:]
	require.Equal(t, []command.Opcode{
		command.OpSetEnFontSize, command.OpDisplayText,
		command.OpSetEnFontSize, command.OpDisplayText,
		command.OpSetEnFontSize, command.OpDisplayText,
		command.OpRefreshAndUpdate,
	}, tail)

	require.Equal(t, rects, s.Count(command.OpFillRectangle))
	require.Len(t, s.drains, 1)
	require.Empty(t, s.polls)
}

func TestDrawSelectionPaintsCode(t *testing.T) {
	s := newSpy(t)
	d := New(s, zaptest.NewLogger(t))
	require.NoError(t, d.DrawSelection(soda))

	grid, err := raster.FromQR(soda.Invoice, qrcode.Medium)
	require.NoError(t, err)
	p, err := placement.Fit(grid.Width(), grid.Height(), placement.Box(0, 200, 600))
	require.NoError(t, err)

	img := s.Snapshot()
	// finder pattern corner in dark gray, its inner ring white
	require.Equal(t, uint8(0x55), img.GrayAt(p.X, p.Y).Y)
	require.Equal(t, uint8(0xFF), img.GrayAt(p.X+p.Scale+1, p.Y+p.Scale+1).Y)
	require.Equal(t, uint8(0xFF), img.GrayAt(p.X-1, p.Y).Y)
	require.True(t, p.Bounds(grid.Width(), grid.Height()).In(placement.Box(0, 200, 600)))
}

func TestDrawQRPolls(t *testing.T) {
	s := newSpy(t)
	d := New(s, zaptest.NewLogger(t), WithPollEvery(10, 20))

	grid, err := raster.NewGrid(3, 2, []byte{
		0x00, 0xFF, 0x00,
		0xFF, 0x00, 0xFF,
	})
	require.NoError(t, err)

	p, err := d.DrawQR(grid, placement.Box(0, 0, 30))
	require.NoError(t, err)
	require.Equal(t, placement.Placement{X: 0, Y: 5, Scale: 10}, p)
	require.Equal(t, 3, s.Count(command.OpFillRectangle))
	require.Empty(t, s.polls)

	big, err := raster.FromQR("poll", qrcode.Medium)
	require.NoError(t, err)
	_, err = d.DrawQR(big, placement.Box(0, 0, 600))
	require.NoError(t, err)

	rects := s.Count(command.OpFillRectangle) - 3
	require.Len(t, s.polls, rects/10)
	for _, size := range s.polls {
		require.Equal(t, 20, size)
	}
}

func TestDrawQRNoFit(t *testing.T) {
	d := New(newSpy(t), zaptest.NewLogger(t))
	grid, err := raster.FromQR("x", qrcode.Medium)
	require.NoError(t, err)

	_, err = d.DrawQR(grid, placement.Box(0, 0, 5))
	require.True(t, errors.Is(err, placement.ErrNoFit))
}

func TestDrawQROutOfRange(t *testing.T) {
	s := newSpy(t)
	d := New(s, zaptest.NewLogger(t))
	grid, err := raster.NewGrid(1, 1, []byte{raster.Foreground})
	require.NoError(t, err)

	for _, region := range []image.Rectangle{
		image.Rect(-10, -10, 0, 0),
		image.Rect(0, -5, 10, 5),
		image.Rect(0x10000-4, 0, 0x10000+4, 8),
	} {
		_, err := d.DrawQR(grid, region)
		require.True(t, errors.Is(err, ErrOutOfRange), "%s", region)
	}
	require.Empty(t, s.ops)

	_, err = d.DrawQR(grid, image.Rect(0x10000-8, 0, 0x10000, 8))
	require.NoError(t, err)
	require.Equal(t, 1, s.Count(command.OpFillRectangle))
}

func TestBusy(t *testing.T) {
	d := New(newSpy(t), zaptest.NewLogger(t), WithSettle(0))
	d.busy.Lock()

	require.True(t, errors.Is(d.DrawSelection(soda), ErrBusy))
	require.True(t, errors.Is(d.Setup(), ErrBusy))
	_, err := d.DrawQR(nil, placement.Box(0, 0, 10))
	require.True(t, errors.Is(err, ErrBusy))

	d.busy.Unlock()
	require.NoError(t, d.Setup())
}

func TestDrawSelectionOverSerial(t *testing.T) {
	port := &flowtest.Port{Respond: flowtest.Device}
	logger := zaptest.NewLogger(t)
	dev := waveshare.NewWithPort(port, logger)
	d := New(dev, logger, WithSettle(0))

	require.NoError(t, d.Setup())
	require.NoError(t, d.DrawSelection(soda))

	stats := dev.Stats()
	require.Zero(t, stats.Backlog)
	require.Zero(t, stats.Surplus)
	require.Equal(t, stats.Received, 2*(stats.Frames-1))
	require.Equal(t, command.Handshake().Encode(), port.Frames()[0])
}

func TestEncodeText(t *testing.T) {
	require.Equal(t, []byte("44.444 satoshis"), EncodeText("44.444 satoshis"))
	require.Equal(t, []byte{0xD6, 0xD0, 0xCE, 0xC4}, EncodeText("中文"))
	require.Equal(t, []byte("a\x1ab"), EncodeText("a\U0001F600b"))
	require.Equal(t, []byte("Jolt Cola"), EncodeText("Jolt\x00 Cola\x00"))

	cmd := command.DisplayText(20, 20, EncodeText("a\x00b"))
	require.Equal(t, []byte{0x00, 0x14, 0x00, 0x14, 'a', 'b', 0x00}, cmd.Payload())
}
