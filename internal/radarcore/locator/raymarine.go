package locator

import (
	"net"

	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/wire/raymarine"
)

// RaymarineLocator discovers Raymarine radars, which require correlating
// a 56-byte and a 36-byte record by link_id before a RadarInfo can be
// built (spec §4.1.3, scenario S4).
type RaymarineLocator struct {
	Addr    *net.UDPAddr
	pairing *raymarine.Pairing
}

func NewRaymarineLocator() *RaymarineLocator {
	return &RaymarineLocator{
		Addr:    &net.UDPAddr{IP: net.IPv4(224, 0, 0, 1), Port: 5800},
		pairing: raymarine.NewPairing(),
	}
}

func (l *RaymarineLocator) Name() model.Brand           { return model.BrandRaymarine }
func (l *RaymarineLocator) DiscoveryAddr() *net.UDPAddr { return l.Addr }
func (l *RaymarineLocator) ProbePacket() []byte         { return nil } // beacon-driven only, per spec §4.6

func (l *RaymarineLocator) ParseBeacon(data []byte, from *net.UDPAddr, nic net.IP) (*model.RadarInfo, bool) {
	var r56 raymarine.Record56
	var r36 raymarine.Record36
	var paired bool

	switch len(data) {
	case 56:
		rec, err := raymarine.ParseRecord56(data)
		if err != nil {
			return nil, false
		}
		r56, r36, paired = l.pairing.Feed56(rec)
	case 36:
		rec, err := raymarine.ParseRecord36(data)
		if err != nil {
			return nil, false
		}
		r56, r36, paired = l.pairing.Feed36(rec)
	default:
		return nil, false
	}
	if !paired {
		return nil, false
	}

	info := &model.RadarInfo{
		Key:                 model.NewKey(model.BrandRaymarine, "", r36.SpokeDataAddr.IP, ""),
		Brand:               model.BrandRaymarine,
		LocatorID:           model.LocatorRaymarine,
		Addr:                from,
		NICAddr:             nic,
		SpokeDataAddr:       r36.SpokeDataAddr,
		SendCommandAddr:     r36.SendCommandAddr,
		SpokesPerRevolution: 2048,
		MaxSpokeLen:         512,
		PixelValues:         16,
		ModelName:           r56.Model.Name(),
	}
	return info, true
}
