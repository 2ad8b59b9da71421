//go:build windows

package netio

import "net"

// bindMulticast binds to 0.0.0.0:port: Windows forbids binding a UDP
// socket to a multicast group address directly.
func bindMulticast(group *net.UDPAddr) (net.PacketConn, error) {
	return net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: group.Port})
}

// bindBroadcast binds to (nic, addr.Port).
func bindBroadcast(addr *net.UDPAddr, nic net.IP) (net.PacketConn, error) {
	return net.ListenUDP("udp4", &net.UDPAddr{IP: nic, Port: addr.Port})
}
