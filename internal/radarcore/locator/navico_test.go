package locator

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/registry"
)

func dualBeacon(serial string, ip net.IP, port uint16) []byte {
	data := make([]byte, 17)
	data[0] = 0x02
	copy(data[1:11], serial)
	copy(data[11:15], ip.To4())
	binary.LittleEndian.PutUint16(data[15:17], port)
	return data
}

// TestNavicoDualBeaconRegistersBothRadars covers scenario S1: a single
// dual-range beacon yields two registry entries, "A" and "B", with
// sequential ids and a Range max that converts 96 NM to 177792 m.
func TestNavicoDualBeaconRegistersBothRadars(t *testing.T) {
	reg := registry.New(nil, false)
	var locatedKeys []string

	loc := &NavicoLocator{
		Addr:     &net.UDPAddr{IP: net.IPv4(236, 6, 7, 5), Port: 6878},
		Registry: reg,
		OnLocated: func(info *model.RadarInfo) {
			locatedKeys = append(locatedKeys, info.Key)
		},
	}

	beacon := dualBeacon("1902501000", net.IPv4(10, 0, 67, 198), 12345)
	from := &net.UDPAddr{IP: net.IPv4(10, 0, 67, 1), Port: 6878}
	info, ok := loc.ParseBeacon(beacon, from, nil)

	assert.False(t, ok)
	assert.Nil(t, info)
	require.Len(t, locatedKeys, 2)
	assert.Equal(t, "Navico-1902501000-A", locatedKeys[0])
	assert.Equal(t, "Navico-1902501000-B", locatedKeys[1])

	a, ok := reg.GetByKey("Navico-1902501000-A")
	require.True(t, ok)
	assert.Equal(t, uint32(1), a.ID)
	b, ok := reg.GetByKey("Navico-1902501000-B")
	require.True(t, ok)
	assert.Equal(t, uint32(2), b.ID)

	ctrl := controls.New(a.ID, false, false)
	ctrl.Insert(controls.RangeDefinition(a))
	rangeCtrl, ok := ctrl.Get(model.ControlRange)
	require.True(t, ok)
	assert.InDelta(t, 177792.0, rangeCtrl.Def.Max, 0.01)
}

func TestNavicoSingleBeaconParsesOneRadar(t *testing.T) {
	reg := registry.New(nil, false)
	loc := NewNavicoLocator(reg, nil)

	data := make([]byte, 17)
	data[0] = 0x01
	copy(data[1:11], "1234567890")
	copy(data[11:15], net.IPv4(192, 168, 1, 50).To4())
	binary.LittleEndian.PutUint16(data[15:17], 6678)

	info, ok := loc.ParseBeacon(data, &net.UDPAddr{}, nil)
	require.True(t, ok)
	assert.Equal(t, "1234567890", info.SerialNo)
	assert.Equal(t, "", info.Which)
}

func TestNavicoBeaconTooShortIsRejected(t *testing.T) {
	loc := NewNavicoLocator(registry.New(nil, false), nil)
	_, ok := loc.ParseBeacon(make([]byte, 5), &net.UDPAddr{}, nil)
	assert.False(t, ok)
}
