// Package netio implements the four network-endpoint operations of spec
// C2: multicast listen/send, broadcast listen, and the wifi-interface
// hook. Per-interface multicast join uses golang.org/x/net/ipv4, the
// pack's only concrete example of NIC-scoped multicast join (the ka9q
// radiod controller in other_examples). The UDP receive-loop shape
// (SetReadDeadline + context check) is grounded on the teacher's
// internal/lidar/network listener.
package netio

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/net/ipv4"
)

// Conn wraps a UDP socket plus the deadline-loop machinery needed to make
// a blocking read cooperate with context cancellation.
type Conn struct {
	pc   net.PacketConn
	raw  *ipv4.PacketConn
}

func (c *Conn) Close() error { return c.pc.Close() }

// ReadFrom blocks until a datagram arrives, ctx is canceled, or an error
// occurs. It repeatedly sets a short read deadline and checks ctx.Done(),
// matching the teacher's UDP listener loop.
func (c *Conn) ReadFrom(ctx context.Context, buf []byte) (n int, addr net.Addr, err error) {
	for {
		select {
		case <-ctx.Done():
			return 0, nil, ctx.Err()
		default:
		}
		c.pc.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, addr, err = c.pc.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return 0, nil, ctx.Err()
			}
			return 0, nil, err
		}
		return n, addr, nil
	}
}

func (c *Conn) WriteTo(b []byte, addr net.Addr) (int, error) {
	return c.pc.WriteTo(b, addr)
}

// MulticastListen joins group on nic and returns a ready-to-use socket.
// On Unix-like platforms the bind address is the multicast group with
// the group's port (see bind_unix.go); replay forces the
// unspecified NIC regardless of what the caller passed.
func MulticastListen(group *net.UDPAddr, nic *net.Interface, replay bool) (*Conn, error) {
	if replay {
		nic = nil
	}
	pc, err := bindMulticast(group)
	if err != nil {
		return nil, fmt.Errorf("multicast listen %s: %w", group, err)
	}
	p := ipv4.NewPacketConn(pc)
	if err := p.JoinGroup(nic, &net.UDPAddr{IP: group.IP}); err != nil {
		pc.Close()
		return nil, fmt.Errorf("join group %s on %v: %w", group.IP, nic, err)
	}
	p.SetMulticastLoopback(false)
	return &Conn{pc: pc, raw: p}, nil
}

// BroadcastListen sets up a broadcast-receive socket. Unix binds to addr
// directly; Windows binds to (nic, addr.Port) instead.
func BroadcastListen(addr *net.UDPAddr, nic net.IP) (*Conn, error) {
	pc, err := bindBroadcast(addr, nic)
	if err != nil {
		return nil, fmt.Errorf("broadcast listen %s: %w", addr, err)
	}
	return &Conn{pc: pc}, nil
}

// MulticastSend binds to (nic, group.Port) and connects to group so that
// subsequent Write calls are directed without specifying the address
// each time.
func MulticastSend(group *net.UDPAddr, nic net.IP) (*Conn, error) {
	laddr := &net.UDPAddr{IP: nic, Port: group.Port}
	conn, err := net.DialUDP("udp4", laddr, group)
	if err != nil {
		return nil, fmt.Errorf("multicast send %s via %s: %w", group, nic, err)
	}
	return &Conn{pc: conn}, nil
}

// IsWirelessInterface is the platform hook used to skip WiFi interfaces
// unless the user passes -allow-wifi. The portable heuristic here checks
// common WiFi interface name prefixes; platform-specific builds may
// override this with an OS query.
func IsWirelessInterface(name string) bool {
	prefixes := []string{"wlan", "wlp", "wl", "ath", "wifi", "airport", "en0"}
	for _, p := range prefixes {
		if len(name) >= len(p) && name[:len(p)] == p {
			return true
		}
	}
	return false
}
