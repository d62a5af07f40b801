package command

import "encoding/binary"

const (
	Header byte = 0xA5

	HeaderLen   = 1
	LengthLen   = 2
	OpcodeLen   = 1
	FooterLen   = 4
	ChecksumLen = 1

	// Overhead is the frame size of a command with an empty payload.
	Overhead = HeaderLen + LengthLen + OpcodeLen + FooterLen + ChecksumLen
)

// Footer closes every frame, right before the checksum byte.
var Footer = [FooterLen]byte{0xCC, 0x33, 0xC3, 0x3C}

// FrameLen returns the total wire size of a frame carrying n payload bytes.
func FrameLen(n int) int {
	return Overhead + n
}

// Encode assembles header, big endian length, opcode, payload and footer,
// then appends the XOR checksum of everything before it.
//
//	offset  size  field
//	0       1     header = 0xA5
//	1       2     length = total frame length including checksum
//	3       1     opcode
//	4       N     payload
//	4+N     4     footer = 0xCC 0x33 0xC3 0x3C
//	8+N     1     checksum = XOR of bytes [0 .. 8+N)
func Encode(op Opcode, payload []byte) []byte {
	size := FrameLen(len(payload))

	frame := make([]byte, 0, size)
	frame = append(frame, Header)
	frame = binary.BigEndian.AppendUint16(frame, uint16(size))
	frame = append(frame, byte(op))
	frame = append(frame, payload...)
	frame = append(frame, Footer[:]...)

	return append(frame, Checksum(frame))
}

// Checksum folds every byte of b with XOR.
func Checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum ^= v
	}
	return sum
}
