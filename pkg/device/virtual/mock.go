package virtual

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

var grays = map[command.Color]color.Gray{
	command.Black:     {Y: 0x00},
	command.DarkGray:  {Y: 0x55},
	command.LightGray: {Y: 0xAA},
	command.White:     {Y: 0xFF},
}

// Mock is a display that answers every command at once and paints shape
// commands onto an in-memory canvas.
func Mock(logger *zap.Logger, width, height int) *Mocker {
	m := &Mocker{
		l:      logger,
		canvas: image.NewGray(image.Rect(0, 0, width, height)),
		fg:     command.Black,
		bg:     command.White,
	}
	draw.Draw(m.canvas, m.canvas.Bounds(), image.NewUniform(grays[m.bg]), image.Point{}, draw.Src)
	return m
}

type Mocker struct {
	mu     sync.Mutex
	l      *zap.Logger
	canvas *image.Gray
	fg     command.Color
	bg     command.Color
	frames int
	sent   int
	ops    map[command.Opcode]int
}

func (m *Mocker) Send(cmd command.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.frames++
	m.sent += cmd.Len()
	if m.ops == nil {
		m.ops = make(map[command.Opcode]int)
	}
	m.ops[cmd.Opcode()]++

	m.l.With(zap.Stringer("op", cmd.Opcode()), zap.Int("len", cmd.Len())).Debug("send")

	payload := cmd.Payload()
	xy := cmd.Coords()

	switch cmd.Opcode() {
	case command.OpSetPallet:
		if len(payload) == 2 {
			m.fg, m.bg = command.Color(payload[0]), command.Color(payload[1])
		}
	case command.OpClearScreen:
		m.fill(m.canvas.Bounds(), m.bg)
	case command.OpFillRectangle:
		if len(xy) == 4 {
			m.fill(image.Rect(int(xy[0]), int(xy[1]), int(xy[2])+1, int(xy[3])+1), m.fg)
		}
	case command.OpDrawRectangle:
		if len(xy) == 4 {
			x1, y1, x2, y2 := int(xy[0]), int(xy[1]), int(xy[2]), int(xy[3])
			m.fill(image.Rect(x1, y1, x2+1, y1+1), m.fg)
			m.fill(image.Rect(x1, y2, x2+1, y2+1), m.fg)
			m.fill(image.Rect(x1, y1, x1+1, y2+1), m.fg)
			m.fill(image.Rect(x2, y1, x2+1, y2+1), m.fg)
		}
	case command.OpFillCircle:
		if len(xy) == 3 {
			cx, cy, r := int(xy[0]), int(xy[1]), int(xy[2])
			for y := cy - r; y <= cy+r; y++ {
				for x := cx - r; x <= cx+r; x++ {
					if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
						m.canvas.SetGray(x, y, grays[m.fg])
					}
				}
			}
		}
	}

	return nil
}

func (m *Mocker) fill(r image.Rectangle, c command.Color) {
	draw.Draw(m.canvas, r.Canon(), image.NewUniform(grays[c]), image.Point{}, draw.Src)
}

func (m *Mocker) Drain(timeout time.Duration) error {
	m.l.With(zap.Duration("timeout", timeout)).Debug("drain")
	return nil
}

func (m *Mocker) Poll(size int, timeout time.Duration) error {
	m.l.With(zap.Int("size", size), zap.Duration("timeout", timeout)).Debug("poll")
	return nil
}

func (m *Mocker) Sync(timeout time.Duration) error {
	m.l.With(zap.Duration("timeout", timeout)).Debug("sync")
	return nil
}

func (m *Mocker) Backlog() int {
	return 0
}

func (m *Mocker) Stats() proto.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return proto.Stats{Frames: m.frames, Sent: m.sent}
}

// Count returns how many commands with opcode op were sent.
func (m *Mocker) Count(op command.Opcode) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ops[op]
}

// Snapshot returns a copy of the canvas.
func (m *Mocker) Snapshot() *image.Gray {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := image.NewGray(m.canvas.Bounds())
	copy(c.Pix, m.canvas.Pix)
	return c
}

// Save writes the canvas to path, the format follows the extension.
func (m *Mocker) Save(path string) error {
	img := m.Snapshot()
	if err := imaging.Save(img, path); err != nil {
		return err
	}
	m.l.With(zap.String("path", path)).Info("canvas saved")
	return nil
}
