// Package flowtest provides an in-memory device link for tests.
package flowtest

import (
	"bytes"
	"sync"
	"time"

	"epaper/pkg/command"
)

// Port queues scripted responses and records everything written to it.
// Each queued chunk is handed out by consecutive reads; an empty queue reads
// as a timeout (0, nil) unless ReadErr is set.
type Port struct {
	mu       sync.Mutex
	queue    [][]byte
	written  bytes.Buffer
	frames   [][]byte
	timeouts []time.Duration

	// Respond, when set, is called with every written frame and its result
	// is queued for reading.
	Respond func(frame []byte) []byte
	ReadErr error
	WriteErr error
}

func (p *Port) Feed(chunks ...[]byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range chunks {
		if len(c) > 0 {
			p.queue = append(p.queue, append([]byte(nil), c...))
		}
	}
}

func (p *Port) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return 0, p.ReadErr
	}

	n := copy(b, p.queue[0])
	if n < len(p.queue[0]) {
		p.queue[0] = p.queue[0][n:]
	} else {
		p.queue = p.queue[1:]
	}
	return n, nil
}

func (p *Port) Write(b []byte) (int, error) {
	p.mu.Lock()
	if p.WriteErr != nil {
		p.mu.Unlock()
		return 0, p.WriteErr
	}
	p.written.Write(b)
	p.frames = append(p.frames, append([]byte(nil), b...))
	respond := p.Respond
	p.mu.Unlock()

	if respond != nil {
		p.Feed(respond(b))
	}
	return len(b), nil
}

func (p *Port) SetReadTimeout(t time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeouts = append(p.timeouts, t)
	return nil
}

// Pending is the number of queued bytes not read yet.
func (p *Port) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int
	for _, c := range p.queue {
		n += len(c)
	}
	return n
}

func (p *Port) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}

// Frames returns every Write call payload in order.
func (p *Port) Frames() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.frames...)
}

func (p *Port) Timeouts() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.timeouts...)
}

// Device answers each frame the way the panel does: "OK" for commands with a
// two byte response, padded ASCII for longer ones and nothing otherwise.
func Device(frame []byte) []byte {
	if len(frame) < 4 {
		return nil
	}
	n := command.Opcode(frame[3]).ResponseBytes()
	switch {
	case n == 0:
		return nil
	case n == 2:
		return []byte("OK")
	default:
		return bytes.Repeat([]byte("0"), n)
	}
}
