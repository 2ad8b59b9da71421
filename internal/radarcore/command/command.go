// Package command implements the command sender (spec C8): stateless,
// per-brand translation of a control mutation into a wire command. I/O
// is left to the caller (the report receiver owns the send socket),
// grounded on the teacher's radar/serial.go, where SendCommand is a thin
// wire-format function over an already-open connection.
package command

import (
	"encoding/binary"
	"fmt"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

// Encoder builds the wire bytes for one control mutation. Returns an
// error for control ids the brand does not support as a command.
type Encoder func(id model.ControlID, value float64) ([]byte, error)

// Navico encodes a control mutation using Navico's single-byte command
// framing: [commandID, length, payload...].
func Navico(id model.ControlID, value float64) ([]byte, error) {
	switch id {
	case model.ControlRange:
		buf := make([]byte, 6)
		buf[0] = 0x03
		buf[1] = 4
		binary.LittleEndian.PutUint32(buf[2:], uint32(value))
		return buf, nil
	case model.ControlGain:
		return []byte{0x06, 1, byte(value)}, nil
	case model.ControlSea:
		return []byte{0x07, 1, byte(value)}, nil
	case model.ControlRain:
		return []byte{0x08, 1, byte(value)}, nil
	case model.ControlPower:
		return []byte{0x01, 1, byte(value)}, nil
	case model.ControlInterferenceRejection:
		return []byte{0x0a, 1, byte(value)}, nil
	default:
		return nil, fmt.Errorf("navico: control %d has no command encoding", id)
	}
}

// Furuno encodes a control mutation as a fixed-shape TCP command frame:
// [0x01, controlByte, valueLE32].
func Furuno(id model.ControlID, value float64) ([]byte, error) {
	var controlByte byte
	switch id {
	case model.ControlRange:
		controlByte = 0x10
	case model.ControlGain:
		controlByte = 0x11
	case model.ControlSea:
		controlByte = 0x12
	case model.ControlRain:
		controlByte = 0x13
	case model.ControlPower:
		controlByte = 0x01
	default:
		return nil, fmt.Errorf("furuno: control %d has no command encoding", id)
	}
	buf := make([]byte, 6)
	buf[0] = 0x01
	buf[1] = controlByte
	binary.LittleEndian.PutUint32(buf[2:], uint32(int32(value)))
	return buf, nil
}

// Raymarine has no documented command channel in this retrieval pack;
// discovery and reporting are beacon-driven only (spec §4.6), so there is
// nothing for the Raymarine encoder to translate. EncoderFor returns nil
// for Raymarine rather than a stub that always errors.
func EncoderFor(brand model.Brand) Encoder {
	switch brand {
	case model.BrandNavico:
		return Navico
	case model.BrandFuruno:
		return Furuno
	default:
		return nil
	}
}
