package command

import (
	"encoding/binary"
)

func Handshake() Command {
	return Command{op: OpHandshake}
}

// SetBaudrate changes the device baud rate. The default after power up is
// 115200; the device may need ~100ms before it answers at the new rate.
func SetBaudrate(baud uint32) Command {
	return Command{op: OpSetBaudrate, payload: binary.BigEndian.AppendUint32(nil, baud)}
}

func ReadBaudrate() Command {
	return Command{op: OpReadBaudrate}
}

func ReadStorageMode() Command {
	return Command{op: OpReadStorageMode}
}

func SetStorageMode(mode StorageMode) Command {
	return Command{op: OpSetStorageMode, payload: []byte{mode.Byte()}}
}

// SleepMode puts the device to sleep. Only a rising edge on the wake up pin
// brings it back; it answers no commands meanwhile.
func SleepMode() Command {
	return Command{op: OpSleepMode}
}

func RefreshAndUpdate() Command {
	return Command{op: OpRefreshAndUpdate}
}

func CurrentDisplayRotation() Command {
	return Command{op: OpCurrentDisplayRotation}
}

func SetCurrentDisplayRotation(r Rotation) Command {
	return Command{op: OpSetCurrentDisplayRotation, payload: []byte{r.Byte()}}
}

func ImportFontLibrary() Command {
	return Command{op: OpImportFontLibrary}
}

func ImportImage() Command {
	return Command{op: OpImportImage}
}

// SetPallet sets the foreground color used by shapes and text, and the
// background color used by ClearScreen.
func SetPallet(fg, bg Color) Command {
	return Command{op: OpSetPallet, payload: []byte{fg.Byte(), bg.Byte()}}
}

func GetPallet() Command {
	return Command{op: OpGetPallet}
}

func SetEnFontSize(size FontSize) Command {
	return Command{op: OpSetEnFontSize, payload: []byte{size.Byte()}}
}

func SetZhFontSize(size FontSize) Command {
	return Command{op: OpSetZhFontSize, payload: []byte{size.Byte()}}
}

// DisplayText draws pre-encoded text (GB2312 on the stock firmware) at x, y.
func DisplayText(x, y uint16, text []byte) Command {
	return Command{op: OpDisplayText, payload: stringPayload(x, y, text)}
}

// DisplayImage shows a bitmap stored on the device. Names are upper case and
// shorter than 11 bytes including the terminator, e.g. "PIC7.BMP".
func DisplayImage(x, y uint16, name string) Command {
	return Command{op: OpDisplayImage, payload: stringPayload(x, y, []byte(name))}
}

func DrawCircle(x, y, radius uint16) Command {
	return Command{op: OpDrawCircle, payload: coords(x, y, radius)}
}

func FillCircle(x, y, radius uint16) Command {
	return Command{op: OpFillCircle, payload: coords(x, y, radius)}
}

func DrawTriangle(x1, y1, x2, y2, x3, y3 uint16) Command {
	return Command{op: OpDrawTriangle, payload: coords(x1, y1, x2, y2, x3, y3)}
}

func FillTriangle(x1, y1, x2, y2, x3, y3 uint16) Command {
	return Command{op: OpFillTriangle, payload: coords(x1, y1, x2, y2, x3, y3)}
}

// DrawRectangle outlines the rectangle with diagonal corners (x1, y1) and
// (x2, y2), both inclusive.
func DrawRectangle(x1, y1, x2, y2 uint16) Command {
	return Command{op: OpDrawRectangle, payload: coords(x1, y1, x2, y2)}
}

func FillRectangle(x1, y1, x2, y2 uint16) Command {
	return Command{op: OpFillRectangle, payload: coords(x1, y1, x2, y2)}
}

// ClearScreen fills the screen with the pallet background color.
func ClearScreen() Command {
	return Command{op: OpClearScreen}
}

func coords(vs ...uint16) []byte {
	b := make([]byte, 0, 2*len(vs))
	for _, v := range vs {
		b = binary.BigEndian.AppendUint16(b, v)
	}
	return b
}

// stringPayload is the position followed by the text and a 0x00 terminator.
func stringPayload(x, y uint16, text []byte) []byte {
	b := coords(x, y)
	b = append(b, text...)
	return append(b, 0x00)
}
