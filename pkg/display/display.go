// Package display draws invoice cards on the e-paper screen: three text
// lines over a QR code of the invoice.
package display

import (
	"image"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"epaper/pkg/catalog"
	"epaper/pkg/command"
	"epaper/pkg/flow"
	"epaper/pkg/placement"
	"epaper/pkg/proto"
	"epaper/pkg/raster"
)

var (
	ErrBusy       = errors.New("display is busy")
	ErrOutOfRange = errors.New("placement outside device coordinates")
)

// coords is the area addressable by the u16 coordinates of a frame.
var coords = image.Rect(0, 0, 0x10000, 0x10000)

const (
	DefaultSettle       = 2 * time.Second
	DefaultSetupTimeout = 10 * time.Second
	DefaultPollEvery    = 100
	DefaultPollSize     = 200
)

// label is one line of the card.
type label struct {
	x, y uint16
	size command.FontSize
}

var labels = [3]label{
	{x: 20, y: 20, size: command.Size64},
	{x: 20, y: 100, size: command.Size32},
	{x: 20, y: 140, size: command.Size48},
}

func New(dev proto.Control, logger *zap.Logger, opts ...Option) *Display {
	d := &Display{
		dev:          dev,
		log:          logger,
		settle:       DefaultSettle,
		rotation:     command.Flip,
		setupTimeout: DefaultSetupTimeout,
		drainTimeout: flow.DefaultTimeout,
		pollEvery:    DefaultPollEvery,
		pollSize:     DefaultPollSize,
		region:       placement.Box(0, 200, 600),
		level:        qrcode.Medium,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type Display struct {
	busy sync.Mutex
	dev  proto.Control
	log  *zap.Logger

	settle       time.Duration
	rotation     command.Rotation
	setupTimeout time.Duration
	drainTimeout time.Duration
	pollEvery    int
	pollSize     int
	region       image.Rectangle
	level        qrcode.RecoveryLevel
}

// Setup shakes hands, waits for the module to settle, applies the rotation
// and waits for both to be acknowledged.
func (d *Display) Setup() error {
	if !d.busy.TryLock() {
		return ErrBusy
	}
	defer d.busy.Unlock()

	start := time.Now()
	if err := d.dev.Send(command.Handshake()); err != nil {
		return errors.Wrap(err, "handshake")
	}

	time.Sleep(d.settle)

	if err := d.dev.Send(command.SetCurrentDisplayRotation(d.rotation)); err != nil {
		return errors.Wrap(err, "set rotation")
	}

	if err := d.dev.Drain(d.setupTimeout); err != nil {
		return err
	}

	d.log.With(zap.Duration("cost", time.Since(start)), zap.Int("backlog", d.dev.Backlog())).Info("setup finished")
	return nil
}

// DrawQR fills the dark runs of grid, scaled to fit region. No refresh is
// sent.
func (d *Display) DrawQR(grid *raster.Grid, region image.Rectangle) (placement.Placement, error) {
	if !d.busy.TryLock() {
		return placement.Placement{}, ErrBusy
	}
	defer d.busy.Unlock()

	return d.drawQR(d.log, grid, region)
}

func (d *Display) drawQR(log *zap.Logger, grid *raster.Grid, region image.Rectangle) (placement.Placement, error) {
	start := time.Now()

	p, err := placement.Fit(grid.Width(), grid.Height(), region)
	if err != nil {
		return p, err
	}
	if b := p.Bounds(grid.Width(), grid.Height()); !b.In(coords) {
		return p, errors.Wrapf(ErrOutOfRange, "%s", b)
	}

	n := 0
	for r := range grid.Rects(p.Scale, p.X, p.Y, raster.Background) {
		cmd := command.FillRectangle(uint16(r.X1), uint16(r.Y1), uint16(r.X2), uint16(r.Y2))
		if err := d.dev.Send(cmd); err != nil {
			return p, errors.Wrapf(err, "fill rectangle %d", n)
		}
		n++

		if d.pollEvery > 0 && n%d.pollEvery == 0 {
			if err := d.dev.Poll(d.pollSize, d.drainTimeout); err != nil {
				return p, err
			}
		}
	}

	log.With(
		zap.Int("modules", grid.Width()),
		zap.Int("scale", p.Scale),
		zap.Int("rects", n),
		zap.Duration("cost", time.Since(start)),
	).Debug("draw qr")

	return p, nil
}

// DrawSelection renders a full card and refreshes the panel. It fails with
// ErrBusy while another drawing is in flight.
func (d *Display) DrawSelection(sel catalog.Selection) error {
	if !d.busy.TryLock() {
		return ErrBusy
	}
	defer d.busy.Unlock()

	log := d.log.With(zap.Stringer("job", xid.New()))
	start := time.Now()
	log.With(zap.String("first", sel.FirstLine), zap.String("second", sel.SecondLine)).Info("drawing")

	grid, err := raster.FromQR(sel.Invoice, d.level)
	if err != nil {
		return err
	}

	if err := d.dev.Send(command.ClearScreen()); err != nil {
		return err
	}

	// gray stays inside the pixel grid, black bleeds into neighbours
	if err := d.dev.Send(command.SetPallet(command.DarkGray, command.White)); err != nil {
		return err
	}

	if _, err := d.drawQR(log, grid, d.region); err != nil {
		return err
	}

	if err := d.dev.Send(command.SetPallet(command.Black, command.White)); err != nil {
		return err
	}

	if err := d.drawLabels(sel.FirstLine, sel.SecondLine, sel.PriceText()); err != nil {
		return err
	}

	if err := d.dev.Send(command.RefreshAndUpdate()); err != nil {
		return err
	}

	log.With(zap.Duration("cost", time.Since(start))).Debug("reading after")
	if err := d.dev.Drain(d.drainTimeout); err != nil {
		return err
	}

	log.With(zap.Duration("cost", time.Since(start)), zap.Int("backlog", d.dev.Backlog())).Info("finished")
	return nil
}

func (d *Display) drawLabels(lines ...string) error {
	for i, line := range lines {
		l := labels[i]
		if err := d.dev.Send(command.SetEnFontSize(l.size)); err != nil {
			return err
		}
		if err := d.dev.Send(command.DisplayText(l.x, l.y, EncodeText(line))); err != nil {
			return errors.Wrapf(err, "label %d", i)
		}
	}
	return nil
}
