package command

import "fmt"

// Color is one of the four gray levels of the panel.
type Color uint8

const (
	Black Color = iota
	DarkGray
	LightGray
	White
)

var colorBytes = map[Color]byte{
	Black:     0x00,
	DarkGray:  0x01,
	LightGray: 0x02,
	White:     0x03,
}

var colorNames = map[Color]string{
	Black:     "black",
	DarkGray:  "dark-gray",
	LightGray: "light-gray",
	White:     "white",
}

func (c Color) Byte() byte {
	return colorBytes[c]
}

func (c Color) Valid() bool {
	_, ok := colorBytes[c]
	return ok
}

func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Rotation only supports 180 degree flips. Depending on the firmware the
// flipped value is either Flip or FlipB.
type Rotation uint8

const (
	Normal Rotation = iota
	Flip
	FlipB
)

var rotationBytes = map[Rotation]byte{
	Normal: 0x00,
	Flip:   0x01,
	FlipB:  0x02,
}

func (r Rotation) Byte() byte {
	return rotationBytes[r]
}

func (r Rotation) Valid() bool {
	_, ok := rotationBytes[r]
	return ok
}

// FontSize is the glyph height in pixels.
type FontSize uint8

const (
	Size32 FontSize = 32
	Size48 FontSize = 48
	Size64 FontSize = 64
)

var fontSizeBytes = map[FontSize]byte{
	Size32: 0x01,
	Size48: 0x02,
	Size64: 0x03,
}

func (s FontSize) Byte() byte {
	return fontSizeBytes[s]
}

func (s FontSize) Valid() bool {
	_, ok := fontSizeBytes[s]
	return ok
}

// StorageMode picks where fonts and images are loaded from.
type StorageMode uint8

const (
	NandFlash StorageMode = iota
	MicroSD
)

var storageBytes = map[StorageMode]byte{
	NandFlash: 0x00,
	MicroSD:   0x01,
}

func (m StorageMode) Byte() byte {
	return storageBytes[m]
}
