// Package report implements the report receiver (spec C6): one task per
// registered radar that turns brand-specific report traffic into control
// updates via the control registry (C3). It never talks to subscribers
// directly -- everything flows through controls.Registry.
package report

import (
	"context"
	"encoding/binary"
	"net"
	"time"

	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/netio"
	"github.com/wavemark/radargw/internal/timeutil"
)

// NavicoReceiver listens on the report multicast address and issues
// periodic (~5s) requests on the command address. Report types handled:
// 0x03 (model/status, carries radar_type byte used for model detection),
// 0x02/0x04/0x06/0x08/0x12/0x11 (control values).
type NavicoReceiver struct {
	Info *model.RadarInfo
	Ctrl *controls.Registry
	Conn *netio.Conn
	Cmd  *netio.Conn // command-address socket, for periodic requests
	// Clock drives the periodic status-request ticker; defaults to the
	// real clock when nil.
	Clock timeutil.Clock
}

func (r *NavicoReceiver) clock() timeutil.Clock {
	if r.Clock == nil {
		return timeutil.RealClock{}
	}
	return r.Clock
}

func (r *NavicoReceiver) Run(ctx context.Context) error {
	ticker := r.clock().NewTicker(5 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if r.Cmd != nil {
					r.Cmd.WriteTo(navicoRequestPacket(), r.Info.SendCommandAddr)
				}
			}
		}
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, _, err := r.Conn.ReadFrom(ctx, buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		r.handleReport(buf[:n])
	}
}

func navicoRequestPacket() []byte {
	return []byte{0x04, 0xc2, 0x02}
}

func (r *NavicoReceiver) handleReport(data []byte) {
	if len(data) < 2 {
		return
	}
	switch data[1] {
	case 0x03:
		if len(data) < 4 {
			return
		}
		radarType := data[3]
		r.Info.Mu.Lock()
		r.Info.ModelName = navicoModelName(radarType)
		r.Info.Mu.Unlock()
		r.Ctrl.MutateFromWire(model.ControlModelName, 0)
	case 0x02:
		if len(data) < 4 {
			return
		}
		r.Ctrl.MutateFromWire(model.ControlGain, float64(data[3]))
	case 0x04:
		if len(data) < 4 {
			return
		}
		r.Ctrl.MutateFromWire(model.ControlSea, float64(data[3]))
	case 0x06:
		if len(data) < 4 {
			return
		}
		r.Ctrl.MutateFromWire(model.ControlRain, float64(data[3]))
	case 0x08:
		if len(data) < 6 {
			return
		}
		rangeMeters := binary.LittleEndian.Uint32(data[2:6])
		r.Ctrl.MutateFromWire(model.ControlRange, float64(rangeMeters))
	case 0x12:
		if len(data) < 4 {
			return
		}
		r.Ctrl.MutateFromWire(model.ControlPower, float64(data[3]))
	case 0x11:
		if len(data) < 4 {
			return
		}
		r.Ctrl.MutateFromWire(model.ControlInterferenceRejection, float64(data[3]))
	}
}

func navicoModelName(radarType byte) string {
	switch radarType {
	case 0x08:
		return "3G"
	case 0x0f, 0x01:
		return "4G" // ambiguous with HALO, see DESIGN.md open question
	case 0x0c:
		return "HALO"
	default:
		return "BR24"
	}
}

// FurunoReceiver logs into the radar over unicast TCP with a fixed
// credential packet. The port carried by the reply is recorded as
// Info.ReportAddr; reports are then read on the login connection itself,
// and no connection is opened to that port. Any I/O failure ends Run
// with the error; the data receiver of the same radar keeps running.
type FurunoReceiver struct {
	Info *model.RadarInfo
	Ctrl *controls.Registry
}

var furunoLoginPacket = []byte{0x02, 0x00, 0x00, 0x00}

func (r *FurunoReceiver) Run(ctx context.Context) error {
	conn, err := net.DialTimeout("tcp", r.Info.Addr.String(), 500*time.Millisecond)
	if err != nil {
		return err
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(500 * time.Millisecond))
	if _, err := conn.Write(furunoLoginPacket); err != nil {
		return err
	}

	reply := make([]byte, 32)
	n, err := conn.Read(reply)
	if err != nil {
		return err
	}
	if n < 32 || reply[0] != 0x02 {
		return &loginError{"malformed login reply"}
	}
	reportPort := binary.LittleEndian.Uint16(reply[2:4])
	r.Info.Mu.Lock()
	r.Info.ReportAddr = &net.UDPAddr{IP: r.Info.Addr.IP, Port: int(reportPort)}
	r.Info.ModelName = string(trimNulls(reply[16:24]))
	r.Info.Mu.Unlock()

	buf := make([]byte, 32)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		n, err := conn.Read(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return err
		}
		r.handleReport(buf[:n])
	}
}

func (r *FurunoReceiver) handleReport(data []byte) {
	if len(data) < 8 || data[0] != 0x02 {
		return
	}
	// report byte 4 carries a settings identifier in this simplified
	// mapping; range/gain/sea bytes follow at fixed offsets.
	switch data[4] {
	case 0x10:
		r.Ctrl.MutateFromWire(model.ControlRange, float64(binary.LittleEndian.Uint32(data[5:])))
	case 0x11:
		r.Ctrl.MutateFromWire(model.ControlGain, float64(data[5]))
	case 0x12:
		r.Ctrl.MutateFromWire(model.ControlSea, float64(data[5]))
	}
}

func trimNulls(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

type loginError struct{ msg string }

func (e *loginError) Error() string { return "furuno login: " + e.msg }
