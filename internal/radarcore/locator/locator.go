// Package locator implements the locator engine (spec C5): per-brand
// multicast beacon listening, one socket per NIC, dispatching each
// datagram to a brand-specific parser and registering successful
// sightings with the radar registry (C4). Brand polymorphism is
// implemented as a capability interface dispatched via a table, not
// inheritance, per spec §9's re-architecture note.
package locator

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/netio"
	"github.com/wavemark/radargw/internal/radarcore/registry"
	"github.com/wavemark/radargw/internal/timeutil"
)

// Brand is the capability interface every per-brand locator implements.
type Brand interface {
	Name() model.Brand
	DiscoveryAddr() *net.UDPAddr
	// ParseBeacon attempts to decode one datagram into a candidate
	// RadarInfo. ok is false when the datagram was valid-but-incomplete
	// (e.g. Raymarine waiting on the other half of a pair) or invalid.
	ParseBeacon(data []byte, from *net.UDPAddr, nic net.IP) (*model.RadarInfo, bool)
	// ProbePacket returns the active-probe payload to send periodically,
	// or nil if this brand is beacon-only (no active probing).
	ProbePacket() []byte
}

// OnLocated is invoked every time the registry accepts a new sighting
// (Located returned isNew=true); the session (C9) uses this to spawn
// C6+C7+C8 for the radar.
type OnLocated func(info *model.RadarInfo)

// Engine owns one listening socket per (brand, NIC) pair.
type Engine struct {
	Registry  *registry.Registry
	Brands    []Brand
	Replay    bool
	AllowWifi bool
	OnLocated OnLocated
	// Clock drives the active-probe ticker; defaults to the real clock.
	// Tests substitute a timeutil.MockClock to control probe timing
	// without sleeping.
	Clock timeutil.Clock
}

func (e *Engine) clock() timeutil.Clock {
	if e.Clock == nil {
		return timeutil.RealClock{}
	}
	return e.Clock
}

// Run starts a listener goroutine for every (brand, nic) combination and
// blocks until ctx is canceled. NICs come from net.Interfaces(); wireless
// interfaces are skipped unless AllowWifi is set. In replay mode every
// brand listens on the unspecified NIC instead of enumerating real ones.
func (e *Engine) Run(ctx context.Context) error {
	nics, err := e.candidateNICs()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, brand := range e.Brands {
		for _, nic := range nics {
			wg.Add(1)
			go func(b Brand, n *net.Interface) {
				defer wg.Done()
				e.listen(ctx, b, n)
			}(brand, nic)
		}
	}
	wg.Wait()
	return ctx.Err()
}

func (e *Engine) candidateNICs() ([]*net.Interface, error) {
	if e.Replay {
		return []*net.Interface{nil}, nil
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var out []*net.Interface
	for i := range ifaces {
		iface := ifaces[i]
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagMulticast == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if !e.AllowWifi && netio.IsWirelessInterface(iface.Name) {
			continue
		}
		out = append(out, &iface)
	}
	return out, nil
}

func (e *Engine) listen(ctx context.Context, brand Brand, nic *net.Interface) {
	conn, err := netio.MulticastListen(brand.DiscoveryAddr(), nic, e.Replay)
	if err != nil {
		return
	}
	defer conn.Close()

	var nicIP net.IP
	if nic != nil {
		if addrs, err := nic.Addrs(); err == nil {
			for _, a := range addrs {
				if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
					nicIP = ipnet.IP.To4()
					break
				}
			}
		}
	}

	if probe := brand.ProbePacket(); probe != nil && !e.Replay {
		go e.probeLoop(ctx, brand, conn, probe)
	}

	buf := make([]byte, 2048)
	for {
		n, from, err := conn.ReadFrom(ctx, buf)
		if err != nil {
			return
		}
		udpAddr, ok := from.(*net.UDPAddr)
		if !ok {
			continue
		}
		info, ok := brand.ParseBeacon(buf[:n], udpAddr, nicIP)
		if !ok || info == nil {
			continue
		}
		registered, isNew := e.Registry.Located(info)
		if isNew && e.OnLocated != nil {
			e.OnLocated(registered)
		}
	}
}

func (e *Engine) probeLoop(ctx context.Context, brand Brand, conn *netio.Conn, probe []byte) {
	ticker := e.clock().NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			conn.WriteTo(probe, brand.DiscoveryAddr())
		}
	}
}
