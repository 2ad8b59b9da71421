package model

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// RadarInfo is the identity and addressing record for one physical radar.
// The registry (internal/radarcore/registry) owns the canonical copy;
// everyone else holds a *RadarInfo obtained from the registry and treats
// the mutable fields (Legend, Ranges, RotationTimestamp) as guarded by Mu.
type RadarInfo struct {
	Mu sync.RWMutex

	Key       string // stable, process-wide unique, never changes after creation
	ID        uint32 // 0 is the "unassigned" sentinel; registry assigns >=1
	Brand     Brand
	LocatorID LocatorID
	SerialNo  string // optional
	Which     string // optional "A" or "B" dual-range discriminator

	Addr            *net.UDPAddr // radar unicast control address
	NICAddr         net.IP       // our own address on the NIC this radar was seen on
	SpokeDataAddr   *net.UDPAddr
	ReportAddr      *net.UDPAddr
	SendCommandAddr *net.UDPAddr

	SpokesPerRevolution uint32
	MaxSpokeLen         uint32
	PixelValues         uint8 // number of non-zero intensity levels, <= 221

	Legend *Legend

	// RangeDetection holds a flexible per-radar range table when the
	// brand reports available range stops rather than using a fixed
	// compiled-in table (Furuno reports this; Navico does not).
	RangeDetection []uint32
	Ranges         []uint32 // sorted distinct range stops the radar currently offers

	Doppler bool

	RotationTimestamp time.Time

	// ModelName/UserName mirror the ModelName/UserName controls for
	// convenient access without a registry round trip; the controls
	// themselves remain the source of truth for client-facing reads.
	ModelName string
	UserName  string
}

// NewKey builds the stable identity key for a radar: "brand-serial[-which]"
// when a serial number is known, else "brand-addr[-which]".
func NewKey(brand Brand, serialNo string, addr net.IP, which string) string {
	var base string
	if serialNo != "" {
		base = fmt.Sprintf("%s-%s", brand, serialNo)
	} else {
		base = fmt.Sprintf("%s-%s", brand, addr.String())
	}
	if which != "" {
		base += "-" + which
	}
	return base
}

// FullRotation records that a complete 360-degree sweep has been observed
// and returns the rotation duration in milliseconds. Per spec, durations
// outside [300, 10000]ms are rejected: the timestamp still advances (so
// the next rotation is measured from "now"), but 0 is returned and the
// caller must leave the RotationSpeed control untouched.
func (r *RadarInfo) FullRotation(now time.Time) (ms int64, ok bool) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	prev := r.RotationTimestamp
	r.RotationTimestamp = now
	if prev.IsZero() {
		return 0, false
	}
	diff := now.Sub(prev).Milliseconds()
	if diff < 300 || diff > 10000 {
		return 0, false
	}
	return diff, true
}

// RotationRPM converts a rotation duration in milliseconds to the
// RotationSpeed control's RPM value: round(600000/ms).
func RotationRPM(ms int64) uint32 {
	if ms <= 0 {
		return 0
	}
	return uint32((600000 + ms/2) / ms)
}
