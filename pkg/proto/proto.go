package proto

import (
	"io"
	"time"

	"epaper/pkg/command"
)

// Port is a device link with timed reads, satisfied by *Serial.
type Port interface {
	io.ReadWriter
	SetReadTimeout(t time.Duration) error
}

// Control is a display that takes framed commands and answers with response
// bytes which are counted, not interpreted.
type Control interface {
	Send(cmd command.Command) error
	Drain(timeout time.Duration) error
	Poll(size int, timeout time.Duration) error
	Sync(timeout time.Duration) error
	Backlog() int
	Stats() Stats
}

// Stats are transfer counters of a device session.
type Stats struct {
	Frames   int
	Sent     int
	Received int
	Backlog  int
	Surplus  int
}
