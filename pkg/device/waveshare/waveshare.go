// Package waveshare drives the 4.3 inch e-Paper UART module.
package waveshare

import (
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/flow"
	"epaper/pkg/proto"
)

const (
	DefaultPort     = "ttyAMA0"
	DefaultBaudRate = 115200

	Width  = 800
	Height = 600
)

// New opens serial at the power up baud rate and wraps it.
func New(serial *proto.Serial, logger *zap.Logger, opts ...Option) (*EPaper, error) {
	if err := serial.Open(&proto.Options{BaudRate: DefaultBaudRate}); err != nil {
		return nil, err
	}
	return NewWithPort(serial, logger, opts...), nil
}

func NewWithPort(port proto.Port, logger *zap.Logger, opts ...Option) *EPaper {
	e := &EPaper{
		port:         port,
		logger:       logger,
		drainTimeout: flow.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.flow = flow.New(logger.With(zap.String("via", "flow")), e.flowOpts...)
	return e
}

// EPaper serializes port I/O and flow accounting under mu. The counters live
// under their own lock so Stats and Backlog answer during a blocking read,
// reporting the values from before it started.
type EPaper struct {
	mu           sync.Mutex
	port         proto.Port
	logger       *zap.Logger
	flow         *flow.Controller
	flowOpts     []flow.Option
	drainTimeout time.Duration

	smu   sync.Mutex
	stats proto.Stats
}

// Send writes cmd and drains right away once the expected responses reach
// the threshold, so the device output never backs up.
func (e *EPaper) Send(cmd command.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.send(cmd)
}

func (e *EPaper) Drain(timeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.receive(e.flow.Drain(e.port, timeout))
	return nil
}

// Poll reads up to size response bytes whatever the backlog is.
func (e *EPaper) Poll(size int, timeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.receive(e.flow.DrainUpTo(e.port, size, timeout))
	return nil
}

func (e *EPaper) Sync(timeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.receive(e.flow.Sync(e.port, timeout))
	return nil
}

func (e *EPaper) Backlog() int {
	e.smu.Lock()
	defer e.smu.Unlock()

	return e.stats.Backlog
}

func (e *EPaper) Stats() proto.Stats {
	e.smu.Lock()
	defer e.smu.Unlock()

	return e.stats
}

// update applies fn, when set, to the counters and refreshes the flow
// figures. Callers hold mu.
func (e *EPaper) update(fn func(s *proto.Stats)) {
	e.smu.Lock()
	defer e.smu.Unlock()

	if fn != nil {
		fn(&e.stats)
	}
	e.stats.Backlog = e.flow.Expected()
	e.stats.Surplus = e.flow.Surplus()
}

func (e *EPaper) receive(n int) {
	e.update(func(s *proto.Stats) { s.Received += n })
}

// SetBaudrate switches the device and then the host to baud.
func (e *EPaper) SetBaudrate(baud uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.send(command.SetBaudrate(baud)); err != nil {
		return err
	}

	if s, ok := e.port.(interface{ SetBaudRate(int) error }); ok {
		// the device needs a moment before it listens at the new rate
		time.Sleep(100 * time.Millisecond)
		return s.SetBaudRate(int(baud))
	}
	return nil
}

// Sleep powers the panel down. Waking it needs the wake up pin.
func (e *EPaper) Sleep() error {
	return e.Send(command.SleepMode())
}

func (e *EPaper) Close() error {
	if c, ok := e.port.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
