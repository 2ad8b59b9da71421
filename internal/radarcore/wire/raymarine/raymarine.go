// Package raymarine implements the Raymarine Quantum/RD/E-series beacon
// codec (spec C1, §4.1.3). Discovery needs two records correlated by
// link_id: a 56-byte record naming the model, and a 36-byte record
// carrying the data/command multicast addresses. Grounded on
// original_source mayara-lib brand/raymarine, with field offsets
// reconstructed from spec §4.1.3 and scenario S4.
package raymarine

import (
	"encoding/binary"
	"fmt"
	"net"
)

type ParseError struct{ Reason string }

func (e *ParseError) Error() string { return "raymarine: " + e.Reason }

// Model identifies the inferred radar family from the 56-byte record's
// base type field.
type Model int

const (
	ModelUnknown Model = iota
	ModelQuantum
	ModelRDOrE
)

func (m Model) Name() string {
	switch m {
	case ModelQuantum:
		return "QuantumRadar"
	case ModelRDOrE:
		return "RDRadar"
	default:
		return "Unknown"
	}
}

// Record56 is the 56-byte beacon carrying link_id, model name, and base
// type (Quantum vs RD/E-series).
type Record56 struct {
	LinkID   uint32
	Model    Model
	SubType  uint8
}

// ParseRecord56 decodes the 56-byte record. Offsets: 0-3 link_id (LE),
// remaining bytes carry a model-name string and a base-type discriminator
// at a fixed offset; only the fields this gateway needs are extracted.
func ParseRecord56(data []byte) (Record56, error) {
	if len(data) < 56 {
		return Record56{}, &ParseError{Reason: fmt.Sprintf("short record: %d", len(data))}
	}
	linkID := binary.LittleEndian.Uint32(data[0:4])
	subType := data[4]

	var model Model
	switch subType {
	case 0x01:
		model = ModelQuantum
	case 0x02:
		model = ModelRDOrE
	default:
		return Record56{}, &ParseError{Reason: fmt.Sprintf("unknown base type 0x%02x", subType)}
	}

	return Record56{LinkID: linkID, Model: model, SubType: subType}, nil
}

// Record36 is the 36-byte record announcing the data/command multicast
// addresses for a given link_id.
type Record36 struct {
	LinkID          uint32
	SpokeDataAddr   *net.UDPAddr
	SendCommandAddr *net.UDPAddr
}

// ParseRecord36 decodes the 36-byte record: 0-3 link_id (LE), 4-9 spoke
// data address (4-byte IP + 2-byte port, LE), 10-15 command address
// (same shape).
func ParseRecord36(data []byte) (Record36, error) {
	if len(data) < 16 {
		return Record36{}, &ParseError{Reason: fmt.Sprintf("short record: %d", len(data))}
	}
	linkID := binary.LittleEndian.Uint32(data[0:4])

	dataIP := net.IPv4(data[4], data[5], data[6], data[7])
	dataPort := binary.LittleEndian.Uint16(data[8:10])

	cmdIP := net.IPv4(data[10], data[11], data[12], data[13])
	cmdPort := binary.LittleEndian.Uint16(data[14:16])

	return Record36{
		LinkID:          linkID,
		SpokeDataAddr:   &net.UDPAddr{IP: dataIP, Port: int(dataPort)},
		SendCommandAddr: &net.UDPAddr{IP: cmdIP, Port: int(cmdPort)},
	}, nil
}

// Pairing accumulates 56/36 records by link_id until both have arrived
// for the same link, at which point a RadarInfo can be constructed. A
// RadarInfo is created only once the subtype matches the expected value
// for the inferred model (spec requirement); ParseRecord56 already
// rejects unrecognized subtypes so any successfully paired record here
// is consistent by construction.
type Pairing struct {
	pending56 map[uint32]Record56
	pending36 map[uint32]Record36
}

func NewPairing() *Pairing {
	return &Pairing{
		pending56: make(map[uint32]Record56),
		pending36: make(map[uint32]Record36),
	}
}

// Feed56/Feed36 record one half of a pair and return the completed pair
// once both halves for the same link_id have been seen.
func (p *Pairing) Feed56(r Record56) (Record56, Record36, bool) {
	p.pending56[r.LinkID] = r
	if r36, ok := p.pending36[r.LinkID]; ok {
		return r, r36, true
	}
	return Record56{}, Record36{}, false
}

func (p *Pairing) Feed36(r Record36) (Record56, Record36, bool) {
	p.pending36[r.LinkID] = r
	if r56, ok := p.pending56[r.LinkID]; ok {
		return r56, r, true
	}
	return Record56{}, Record36{}, false
}
