package locator

import (
	"encoding/binary"
	"net"

	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/registry"
)

// NavicoLocator discovers Navico radars. Gen3+/HALO beacons announce a
// "dual range" radar as one packet describing both the A and B logical
// radars; this locator registers both directly (bypassing the generic
// single-RadarInfo return of ParseBeacon) since a single datagram can
// yield two registry entries, per scenario S1.
type NavicoLocator struct {
	Addr      *net.UDPAddr
	Registry  *registry.Registry
	OnLocated OnLocated
}

func NewNavicoLocator(reg *registry.Registry, onLocated OnLocated) *NavicoLocator {
	return &NavicoLocator{
		Addr:      &net.UDPAddr{IP: net.IPv4(236, 6, 7, 5), Port: 6878},
		Registry:  reg,
		OnLocated: onLocated,
	}
}

func (l *NavicoLocator) Name() model.Brand            { return model.BrandNavico }
func (l *NavicoLocator) DiscoveryAddr() *net.UDPAddr  { return l.Addr }
func (l *NavicoLocator) ProbePacket() []byte          { return []byte{0x01, 0xb1, 0x00, 0x00, 0x00, 0x02} }

// beacon record layout (simplified): byte 0 = 0x01 (single) or 0x02
// (dual), bytes 1-10 = ASCII serial number, bytes 11-14 = radar IPv4,
// bytes 15-16 = radar port (LE).
func (l *NavicoLocator) ParseBeacon(data []byte, from *net.UDPAddr, nic net.IP) (*model.RadarInfo, bool) {
	if len(data) < 17 {
		return nil, false
	}
	serial := trimZeros(data[1:11])
	ip := net.IPv4(data[11], data[12], data[13], data[14])
	port := binary.LittleEndian.Uint16(data[15:17])
	radarAddr := &net.UDPAddr{IP: ip, Port: int(port)}

	switch data[0] {
	case 0x02:
		for _, which := range []string{"A", "B"} {
			info := l.buildInfo(serial, radarAddr, nic, which)
			registered, isNew := l.Registry.Located(info)
			if isNew && l.OnLocated != nil {
				l.OnLocated(registered)
			}
		}
		return nil, false
	default:
		info := l.buildInfo(serial, radarAddr, nic, "")
		return info, true
	}
}

func (l *NavicoLocator) buildInfo(serial string, addr *net.UDPAddr, nic net.IP, which string) *model.RadarInfo {
	return &model.RadarInfo{
		Key:                 model.NewKey(model.BrandNavico, serial, addr.IP, which),
		Brand:               model.BrandNavico,
		LocatorID:           model.LocatorNavicoGen3Plus,
		SerialNo:            serial,
		Which:               which,
		Addr:                addr,
		NICAddr:             nic,
		SpokesPerRevolution: 2048,
		MaxSpokeLen:         1024,
		PixelValues:         16,
	}
}

func trimZeros(b []byte) string {
	n := len(b)
	for n > 0 && (b[n-1] == 0 || b[n-1] == ' ') {
		n--
	}
	return string(b[:n])
}
