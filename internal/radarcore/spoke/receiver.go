package spoke

import (
	"context"
	"time"

	"github.com/wavemark/radargw/internal/monitoring"
	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/netio"
)

// Decoder is implemented per brand (see wire/navico, wire/furuno) to turn
// one UDP datagram into zero or more normalized spokes. Decoders own
// whatever history state their encoding needs (Furuno's HistoryBuffer);
// the receiver itself is brand-agnostic.
type Decoder interface {
	DecodeFrame(datagram []byte, replay bool) ([]model.Spoke, error)
}

// Heading supplies the external navigation collaborator's current true
// heading, consulted when a spoke's wire data did not carry one.
type Heading interface {
	HeadingTrue() (deg float64, ok bool)
}

// Receiver is the per-radar data receiver (spec C7): owns the spoke
// socket, drives decode, rotation bookkeeping and fan-out. Per-radar
// Statistics (reset every full rotation, read through Stats) and the
// process-wide monitoring.Counters (cumulative, scraped by /metrics) are
// both fed from this single decode loop -- there is exactly one place
// that knows a packet or spoke arrived, so there is exactly one place
// that counts it.
type Receiver struct {
	info     *model.RadarInfo
	conn     *netio.Conn
	decoder  Decoder
	ctrl     *controls.Registry
	hub      *Hub
	stats    *Statistics
	counters *monitoring.Counters
	heading  Heading
	replay   bool

	onRotation func(rotationMs int64)
}

func NewReceiver(info *model.RadarInfo, conn *netio.Conn, decoder Decoder, ctrl *controls.Registry, hub *Hub, heading Heading, replay bool, counters *monitoring.Counters, onRotation func(int64)) *Receiver {
	return &Receiver{
		info: info, conn: conn, decoder: decoder, ctrl: ctrl, hub: hub,
		stats: &Statistics{}, counters: counters, heading: heading, replay: replay, onRotation: onRotation,
	}
}

func (r *Receiver) addBroken() {
	r.stats.AddBroken()
	if r.counters != nil {
		r.counters.AddBroken()
	}
}

// Run drives the receive loop until ctx is canceled or a socket read
// fails. ctx.Done() is checked first on every iteration, then a data read
// is attempted via the deadline-loop in netio.Conn. The loop reads no
// control-update channel; control changes reach it only through ctrl.
func (r *Receiver) Run(ctx context.Context) error {
	var prevAngle uint32
	haveAngle := false
	buf := make([]byte, 8192)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, _, err := r.conn.ReadFrom(ctx, buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if r.counters != nil {
			r.counters.AddPacket()
		}

		spokes, err := r.decoder.DecodeFrame(buf[:n], r.replay)
		if err != nil {
			r.addBroken()
			continue
		}
		if len(spokes) == 0 {
			continue
		}

		now := time.Now()
		for i := range spokes {
			s := &spokes[i]
			if !s.HasBearing && r.heading != nil {
				if deg, ok := r.heading.HeadingTrue(); ok {
					s.HasBearing = true
					s.Bearing = (s.Angle + uint32(deg*float64(r.info.SpokesPerRevolution)/360)) % r.info.SpokesPerRevolution
				}
			}
			if r.replay {
				s.HasTimeMs = true
				s.TimeMillis = uint64(now.UnixMilli())
				if len(s.Data) > 0 {
					s.Data[len(s.Data)-1] = 64
				}
			}

			if haveAngle && s.Angle < prevAngle {
				if ms, ok := r.info.FullRotation(now); ok {
					rpm := model.RotationRPM(ms)
					r.ctrl.MutateFromWire(model.ControlRotationSpeed, float64(rpm))
					r.stats.FullRotation()
					if r.onRotation != nil {
						r.onRotation(ms)
					}
				}
			}
			prevAngle = s.Angle
			haveAngle = true
		}

		r.stats.AddReceived(len(spokes))
		if r.counters != nil {
			r.counters.AddSpokes(len(spokes))
		}
		r.hub.Publish(model.RadarMessage{RadarID: r.info.ID, Spokes: spokes})
	}
}

func (r *Receiver) Stats() Statistics { return r.stats.Snapshot() }
