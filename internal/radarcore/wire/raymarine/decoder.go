package raymarine

import "github.com/wavemark/radargw/internal/radarcore/model"

// FrameDecoder implements spoke.Decoder for Raymarine radars. Unlike
// Furuno and Navico, no Raymarine spoke wire capture was present in this
// retrieval pack; the per-line framing below (4-byte LE angle header
// followed by raw intensity bytes, one datagram per spoke) follows the
// generic shape spec §4.7 describes for the data receiver and is the
// documented Open Question resolution for this brand (see DESIGN.md).
type FrameDecoder struct {
	SpokesPerRevolution uint32
}

func (d *FrameDecoder) DecodeFrame(datagram []byte, replay bool) ([]model.Spoke, error) {
	if len(datagram) < 5 {
		return nil, &ParseError{Reason: "frame too short"}
	}
	angle := uint32(datagram[0]) | uint32(datagram[1])<<8 | uint32(datagram[2])<<16 | uint32(datagram[3])<<24
	data := make([]byte, len(datagram)-4)
	copy(data, datagram[4:])
	return []model.Spoke{{Angle: angle % d.SpokesPerRevolution, Data: data}}, nil
}
