package display

import (
	"image"
	"time"

	"github.com/skip2/go-qrcode"

	"epaper/pkg/command"
)

type Option func(d *Display)

// WithSettle sets the pause after the handshake.
func WithSettle(dur time.Duration) Option {
	return func(d *Display) {
		d.settle = dur
	}
}

func WithRotation(r command.Rotation) Option {
	return func(d *Display) {
		d.rotation = r
	}
}

// WithPollEvery reads up to size response bytes after every n rectangles of
// a QR code. Zero n disables polling.
func WithPollEvery(n, size int) Option {
	return func(d *Display) {
		d.pollEvery = n
		d.pollSize = size
	}
}

// WithQRRegion sets where DrawSelection places the invoice code.
func WithQRRegion(r image.Rectangle) Option {
	return func(d *Display) {
		d.region = r
	}
}

func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(d *Display) {
		d.level = level
	}
}

func WithTimeouts(setup, drain time.Duration) Option {
	return func(d *Display) {
		d.setupTimeout = setup
		d.drainTimeout = drain
	}
}
