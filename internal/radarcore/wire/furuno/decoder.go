package furuno

import "github.com/wavemark/radargw/internal/radarcore/model"

// RangeTable maps a model's range_index byte to a distance in meters. The
// original implementation keys this per radar model. No table is built in
// this module: the session constructs FrameDecoder with RangeOf nil, so
// decoded spokes carry RangeMeters 0.
type RangeTable func(rangeIndex uint8) uint32

// FrameDecoder implements spoke.Decoder for one Furuno radar. It owns the
// HistoryBuffer needed by encodings 2 and 3 (the previously decoded
// spoke's bytes) and the first-sweep-of-frame tracking encoding 2 needs.
type FrameDecoder struct {
	SpokesPerRevolution uint32
	RangeOf             RangeTable

	prevSpoke []byte
}

// DecodeFrame validates the frame, parses metadata, and decodes every
// sweep in the datagram into normalized spokes.
func (d *FrameDecoder) DecodeFrame(datagram []byte, replay bool) ([]model.Spoke, error) {
	if len(datagram) < 16 || datagram[0] != 0x02 {
		return nil, &ParseError{Reason: "invalid frame header"}
	}
	meta, err := ParseMetadataHeader(datagram)
	if err != nil {
		return nil, err
	}

	sweepCount := meta.SweepCount
	if sweepCount > 32 {
		sweepCount = 32
	}

	offset := 16
	spokes := make([]model.Spoke, 0, sweepCount)
	for i := uint32(0); i < sweepCount; i++ {
		if offset+4 > len(datagram) {
			break
		}
		sh, err := ParseSweepHeader(datagram[offset : offset+4])
		if err != nil {
			break
		}
		offset += 4

		remaining := datagram[offset:]
		out, used, err := DecodeSweep(meta.Encoding, remaining, int(meta.SweepLen), d.prevSpoke, i == 0)
		if err != nil {
			break
		}
		offset += used

		pixels := make([]byte, len(out))
		for j, b := range out {
			pixels[j] = ToPixel(b)
		}
		d.prevSpoke = out

		s := model.Spoke{
			Angle: uint32(sh.Angle),
			Data:  pixels,
		}
		if meta.HaveHeading != 0 {
			s.HasBearing = true
			s.Bearing = uint32(sh.Heading)
		}
		if d.RangeOf != nil {
			s.RangeMeters = d.RangeOf(meta.RangeIndex)
		}
		spokes = append(spokes, s)
	}
	return spokes, nil
}
