package waveshare

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

func (e *EPaper) send(cmd command.Command) error {
	if err := e.sendBytes(cmd.Opcode(), cmd.Encode()); err != nil {
		return err
	}

	drain := e.flow.Sent(cmd)
	e.update(nil)

	if drain {
		e.receive(e.flow.Drain(e.port, e.drainTimeout))
	}

	return nil
}

func (e *EPaper) sendBytes(op command.Opcode, bytes []byte) error {
	var sent int
	var cost time.Duration

	start := time.Now()
	if n, err := e.port.Write(bytes); err != nil {
		return errors.Wrapf(err, "write %s failed", op)
	} else {
		sent = n
		cost = time.Since(start)
	}

	e.update(func(s *proto.Stats) {
		s.Frames++
		s.Sent += sent
	})

	ext := ""
	if len(bytes) <= 16 {
		ext = fmt.Sprintf("%x", bytes)
	}

	e.logger.With(
		zap.Stringer("op", op),
		zap.Int("sent", sent),
		zap.String("cost", cost.String()),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}
