package command

import (
	"encoding/binary"
	"fmt"
)

// Command is an opcode with its payload. It is immutable once built; use the
// constructors in commands.go rather than filling one by hand.
type Command struct {
	op      Opcode
	payload []byte
}

// New builds a command from a raw opcode and payload. The payload is copied.
func New(op Opcode, payload []byte) Command {
	return Command{op: op, payload: append([]byte(nil), payload...)}
}

func (c Command) Opcode() Opcode {
	return c.op
}

// Payload returns a copy of the payload bytes.
func (c Command) Payload() []byte {
	return append([]byte(nil), c.payload...)
}

// ResponseBytes is the number of bytes the device emits after executing c.
func (c Command) ResponseBytes() int {
	return c.op.ResponseBytes()
}

// Len is the size of the encoded frame.
func (c Command) Len() int {
	return FrameLen(len(c.payload))
}

func (c Command) Encode() []byte {
	return Encode(c.op, c.payload)
}

func (c Command) String() string {
	return fmt.Sprintf("%s [% x]", c.op, c.Encode())
}

// Coords decodes the payload as big endian uint16 values, which is how
// shape commands carry their coordinates. A trailing odd byte is ignored.
func (c Command) Coords() []uint16 {
	vs := make([]uint16, 0, len(c.payload)/2)
	for i := 0; i+1 < len(c.payload); i += 2 {
		vs = append(vs, binary.BigEndian.Uint16(c.payload[i:]))
	}
	return vs
}
