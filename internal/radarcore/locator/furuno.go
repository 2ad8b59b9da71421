package locator

import (
	"net"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

// FurunoLocator discovers Furuno radars from their 32-byte report beacon
// (name in bytes 16..24, per spec §6.1).
type FurunoLocator struct {
	Addr *net.UDPAddr
}

func NewFurunoLocator() *FurunoLocator {
	return &FurunoLocator{Addr: &net.UDPAddr{IP: net.IPv4(172, 31, 255, 255), Port: 10010}}
}

func (l *FurunoLocator) Name() model.Brand           { return model.BrandFuruno }
func (l *FurunoLocator) DiscoveryAddr() *net.UDPAddr { return l.Addr }
func (l *FurunoLocator) ProbePacket() []byte         { return nil } // Furuno login is TCP-initiated by the report receiver, not probed here

func (l *FurunoLocator) ParseBeacon(data []byte, from *net.UDPAddr, nic net.IP) (*model.RadarInfo, bool) {
	if len(data) < 32 {
		return nil, false
	}
	name := trimZeros(data[16:24])
	return &model.RadarInfo{
		Key:                 model.NewKey(model.BrandFuruno, name, from.IP, ""),
		Brand:               model.BrandFuruno,
		LocatorID:           model.LocatorFuruno,
		SerialNo:            name,
		Addr:                &net.UDPAddr{IP: from.IP, Port: from.Port},
		NICAddr:             nic,
		SpokesPerRevolution: 2048,
		MaxSpokeLen:         1024,
		PixelValues:         64,
		SpokeDataAddr:       &net.UDPAddr{IP: net.IPv4(239, 255, 0, 2), Port: 10024},
	}, true
}
