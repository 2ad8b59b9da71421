//go:build pcap

// Package pcapreplay implements the offline replay source (spec A8): it
// reads a libpcap capture and feeds its UDP payloads into the
// netio/locator/spoke layers as if they had arrived live, pacing
// delivery by the capture's own inter-packet timestamps. Gated behind
// the "pcap" build tag and grounded on the teacher's
// internal/lidar/network/pcap.go, which reads LiDAR captures the same
// way (gopacket.NewPacketSource over pcap.OpenOffline, BPF-filtered by
// UDP port).
package pcapreplay

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// Packet is one replayed UDP datagram, with its original capture
// timestamp preserved for callers that want to report jitter.
type Packet struct {
	CapturedAt time.Time
	From       *net.UDPAddr
	Payload    []byte
}

// Feed reads every UDP datagram from file matching udpPort and calls
// onPacket for each, sleeping between deliveries to reproduce the
// capture's original pacing (scaled by speed; speed=1 is real-time,
// speed=0 disables pacing and replays as fast as possible). Returns when
// the file is exhausted or ctx is canceled.
func Feed(ctx context.Context, file string, udpPort int, speed float64, onPacket func(Packet)) error {
	handle, err := pcap.OpenOffline(file)
	if err != nil {
		return fmt.Errorf("pcapreplay: open %s: %w", file, err)
	}
	defer handle.Close()

	filter := fmt.Sprintf("udp port %d", udpPort)
	if err := handle.SetBPFFilter(filter); err != nil {
		return fmt.Errorf("pcapreplay: bpf filter %q: %w", filter, err)
	}

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	var lastCapture time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case packet, ok := <-source.Packets():
			if !ok || packet == nil {
				return nil
			}
			udpLayer := packet.Layer(layers.LayerTypeUDP)
			if udpLayer == nil {
				continue
			}
			udp, ok := udpLayer.(*layers.UDP)
			if !ok || len(udp.Payload) == 0 {
				continue
			}

			capturedAt := packet.Metadata().Timestamp
			if speed > 0 && !lastCapture.IsZero() {
				gap := capturedAt.Sub(lastCapture)
				if gap > 0 {
					sleepFor := time.Duration(float64(gap) / speed)
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(sleepFor):
					}
				}
			}
			lastCapture = capturedAt

			var from *net.UDPAddr
			if netLayer := packet.NetworkLayer(); netLayer != nil {
				if ip, ok := netLayer.(*layers.IPv4); ok {
					from = &net.UDPAddr{IP: ip.SrcIP, Port: int(udp.SrcPort)}
				}
			}

			payload := make([]byte, len(udp.Payload))
			copy(payload, udp.Payload)
			onPacket(Packet{CapturedAt: capturedAt, From: from, Payload: payload})
		}
	}
}
