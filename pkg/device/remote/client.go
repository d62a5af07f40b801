package remote

import (
	"net/rpc"
	"time"

	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

// New dials a display served by Proxy.
func New(addr string, logger *zap.Logger) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client, logger: logger.With(zap.String("remote", addr))}, nil
}

type Client struct {
	rpc    *rpc.Client
	logger *zap.Logger
}

var _ proto.Control = (*Client)(nil)

func (c *Client) Send(cmd command.Command) error {
	return c.rpc.Call("Service.Send", &SendRequest{
		Opcode:  byte(cmd.Opcode()),
		Payload: cmd.Payload(),
	}, nil)
}

func (c *Client) Drain(timeout time.Duration) error {
	return c.rpc.Call("Service.Drain", timeout, nil)
}

func (c *Client) Poll(size int, timeout time.Duration) error {
	return c.rpc.Call("Service.Poll", PollRequest{Size: size, Timeout: timeout}, nil)
}

func (c *Client) Sync(timeout time.Duration) error {
	return c.rpc.Call("Service.Sync", timeout, nil)
}

// Backlog reports zero when the proxy cannot be reached.
func (c *Client) Backlog() int {
	var n int
	if err := c.rpc.Call("Service.Backlog", EmptyRequest{}, &n); err != nil {
		c.logger.With(zap.Error(err)).Warn("backlog query failed")
		return 0
	}
	return n
}

func (c *Client) Stats() proto.Stats {
	var stats proto.Stats
	if err := c.rpc.Call("Service.Stats", EmptyRequest{}, &stats); err != nil {
		c.logger.With(zap.Error(err)).Warn("stats query failed")
	}
	return stats
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
