package command

import "fmt"

// Opcode selects the device behavior of a frame.
type Opcode byte

const (
	OpHandshake                 Opcode = 0x00
	OpSetBaudrate               Opcode = 0x01
	OpReadBaudrate              Opcode = 0x02
	OpReadStorageMode           Opcode = 0x06
	OpSetStorageMode            Opcode = 0x07
	OpSleepMode                 Opcode = 0x08
	OpRefreshAndUpdate          Opcode = 0x0A
	OpCurrentDisplayRotation    Opcode = 0x0C
	OpSetCurrentDisplayRotation Opcode = 0x0D
	OpImportFontLibrary         Opcode = 0x0E
	OpImportImage               Opcode = 0x0F
	OpSetPallet                 Opcode = 0x10
	OpGetPallet                 Opcode = 0x11
	OpSetEnFontSize             Opcode = 0x1E
	OpSetZhFontSize             Opcode = 0x1F
	OpFillRectangle             Opcode = 0x24
	OpDrawRectangle             Opcode = 0x25
	OpDrawCircle                Opcode = 0x26
	OpFillCircle                Opcode = 0x27
	OpDrawTriangle              Opcode = 0x28
	OpFillTriangle              Opcode = 0x29
	OpClearScreen               Opcode = 0x2E
	OpDisplayText               Opcode = 0x30
	OpDisplayImage              Opcode = 0x70
)

type info struct {
	name     string
	response int
}

// response is the number of bytes the device sends back after executing
// the opcode. Opcodes missing from the table answer nothing.
var opcodes = map[Opcode]info{
	OpHandshake:                 {"Handshake", 0},
	OpSetBaudrate:               {"SetBaudrate", 2},
	OpReadBaudrate:              {"ReadBaudrate", 6},
	OpReadStorageMode:           {"ReadStorageMode", 0},
	OpSetStorageMode:            {"SetStorageMode", 0},
	OpSleepMode:                 {"SleepMode", 0},
	OpRefreshAndUpdate:          {"RefreshAndUpdate", 2},
	OpCurrentDisplayRotation:    {"CurrentDisplayRotation", 0},
	OpSetCurrentDisplayRotation: {"SetCurrentDisplayRotation", 2},
	OpImportFontLibrary:         {"ImportFontLibrary", 0},
	OpImportImage:               {"ImportImage", 0},
	OpSetPallet:                 {"SetPallet", 2},
	OpGetPallet:                 {"GetPallet", 0},
	OpSetEnFontSize:             {"SetEnFontSize", 2},
	OpSetZhFontSize:             {"SetZhFontSize", 2},
	OpFillRectangle:             {"FillRectangle", 2},
	OpDrawRectangle:             {"DrawRectangle", 2},
	OpDrawCircle:                {"DrawCircle", 2},
	OpFillCircle:                {"FillCircle", 2},
	OpDrawTriangle:              {"DrawTriangle", 2},
	OpFillTriangle:              {"FillTriangle", 2},
	OpClearScreen:               {"ClearScreen", 2},
	OpDisplayText:               {"DisplayText", 2},
	OpDisplayImage:              {"DisplayImage", 2},
}

// ResponseBytes returns how many bytes the device answers to the opcode.
func (o Opcode) ResponseBytes() int {
	return opcodes[o].response
}

func (o Opcode) String() string {
	if i, ok := opcodes[o]; ok {
		return i.name
	}
	return fmt.Sprintf("Opcode(0x%02x)", byte(o))
}
