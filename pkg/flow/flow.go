package flow

import (
	"io"
	"time"

	"go.uber.org/zap"

	"epaper/pkg/command"
)

const (
	DefaultThreshold = 600
	DefaultTimeout   = 5 * time.Second
	DefaultChunk     = 100
)

// Port is the read side of the device link. A read that times out returns
// zero bytes and no error.
type Port interface {
	io.Reader
	SetReadTimeout(t time.Duration) error
}

func New(logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		log:       logger,
		threshold: DefaultThreshold,
		chunk:     DefaultChunk,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Controller counts the response bytes the device still owes the host.
// It is not safe for concurrent use; the owner of the port serializes calls.
type Controller struct {
	log       *zap.Logger
	threshold int
	chunk     int
	backlog   int
	surplus   int
}

// Sent accounts for the response of cmd and reports whether the backlog has
// reached the threshold, in which case the caller drains before sending more.
func (c *Controller) Sent(cmd command.Command) bool {
	c.backlog += cmd.ResponseBytes()
	return c.backlog >= c.threshold
}

// Expected is the number of response bytes not yet read back.
func (c *Controller) Expected() int {
	return c.backlog
}

// Surplus is the number of bytes received beyond what was expected.
func (c *Controller) Surplus() int {
	return c.surplus
}

func (c *Controller) Threshold() int {
	return c.threshold
}

// Drain makes one blocking read of up to Expected bytes and subtracts what
// arrived. A short read leaves the remainder for the next drain.
func (c *Controller) Drain(p Port, timeout time.Duration) int {
	if c.backlog == 0 {
		c.log.Debug("no response expected")
		return 0
	}

	return c.DrainUpTo(p, c.backlog, timeout)
}

// DrainUpTo reads at most size bytes regardless of the backlog. Polling loops
// use it to keep the device output moving while commands are still queued.
func (c *Controller) DrainUpTo(p Port, size int, timeout time.Duration) int {
	want := c.backlog
	n := c.read(p, size, timeout)
	c.consume(n)

	c.log.With(
		zap.Int("want", want),
		zap.Int("size", size),
		zap.Int("recv", n),
		zap.Int("backlog", c.backlog),
	).Debug("drain")

	return n
}

// Sync keeps reading chunks until a read returns nothing, flushing any
// straggler bytes whatever the backlog says.
func (c *Controller) Sync(p Port, timeout time.Duration) int {
	var total int
	for {
		n := c.read(p, c.chunk, timeout)
		if n == 0 {
			break
		}
		total += n
		c.consume(n)
	}

	c.log.With(zap.Int("recv", total), zap.Int("backlog", c.backlog)).Debug("sync")
	return total
}

func (c *Controller) consume(n int) {
	c.backlog -= n
	if c.backlog < 0 {
		c.surplus += -c.backlog
		c.log.With(zap.Int("extra", -c.backlog), zap.Int("surplus", c.surplus)).Info("unexpected response bytes")
		c.backlog = 0
	}
}

// read fills up to size bytes until the deadline passes, a read comes back
// empty, or the port fails. Port errors count as a zero byte read.
func (c *Controller) read(p Port, size int, timeout time.Duration) int {
	if size <= 0 {
		return 0
	}

	buf := make([]byte, size)
	deadline := time.Now().Add(timeout)

	var total int
	for total < size {
		left := time.Until(deadline)
		if left <= 0 {
			break
		}

		if err := p.SetReadTimeout(left); err != nil {
			c.log.With(zap.Error(err)).Debug("set read timeout failed")
			break
		}

		n, err := p.Read(buf[total:])
		total += n
		if err != nil {
			c.log.With(zap.Error(err), zap.Int("recv", total)).Debug("read failed")
			break
		}
		if n == 0 {
			break
		}
	}

	return total
}
