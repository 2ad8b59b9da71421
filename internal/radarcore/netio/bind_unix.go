//go:build !windows

package netio

import "net"

// bindMulticast binds directly to the multicast group address, as Unix
// permits (and as ipv4.PacketConn.JoinGroup expects for the typical
// "bind to group" multicast pattern).
func bindMulticast(group *net.UDPAddr) (net.PacketConn, error) {
	return net.ListenUDP("udp4", group)
}

// bindBroadcast binds to addr directly; nic is unused on Unix, where
// SO_BINDTODEVICE-equivalent interface scoping is done via multicast
// group membership rather than bind address.
func bindBroadcast(addr *net.UDPAddr, nic net.IP) (net.PacketConn, error) {
	return net.ListenUDP("udp4", addr)
}
