package proto

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

var ErrPortNotFound = errors.New("serial port not found")

type Options struct {
	DTR         bool
	RTS         bool
	BaudRate    int
	ReadTimeout time.Duration
}

func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

type Serial struct {
	name string
	port serial.Port
	mode serial.Mode
}

func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Open picks the first port whose path contains the configured name, so both
// "/dev/ttyAMA0" and "ttyAMA0" work.
func (s *Serial) Open(opts *Options) error {
	ports, err := s.Ports()
	if err != nil {
		return err
	}

	var matched string
	for _, name := range ports {
		if name == s.name {
			matched = name
			break
		}
		if matched == "" && strings.Contains(name, s.name) {
			matched = name
		}
	}
	if matched == "" {
		return errors.Wrap(ErrPortNotFound, s.name)
	}

	s.mode = serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(matched, &s.mode)
	if err != nil {
		return errors.Wrapf(err, "open %s", matched)
	}

	return errors.Wrapf(s.attach(port, opts), "configure %s", matched)
}

// attach applies the line settings that serial.Mode does not carry and keeps
// port. A port that cannot be configured is closed.
func (s *Serial) attach(port serial.Port, opts *Options) error {
	err := port.SetDTR(opts.DTR)
	if err == nil {
		err = port.SetRTS(opts.RTS)
	}
	if err == nil && opts.ReadTimeout > 0 {
		err = port.SetReadTimeout(opts.ReadTimeout)
	}

	if err != nil {
		_ = port.Close()
		return err
	}

	s.port = port
	return nil
}

// SetBaudRate switches the host side of the link.
func (s *Serial) SetBaudRate(baud int) error {
	s.mode.BaudRate = baud
	return s.port.SetMode(&s.mode)
}

func (s *Serial) SetReadTimeout(t time.Duration) error {
	return s.port.SetReadTimeout(t)
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) Read(p []byte) (n int, err error) {
	return s.port.Read(p)
}

func (s *Serial) Write(p []byte) (n int, err error) {
	return s.port.Write(p)
}
