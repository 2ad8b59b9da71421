// Package session implements the session/orchestration layer (spec C9):
// it wires the locator engine (C5) to the per-radar collaborators --
// control registry (C3), report receiver (C6), data receiver (C7), and
// command sender (C8) -- as each radar is discovered, and tears a
// radar's goroutines down when its context is canceled. Grounded on the
// teacher's root main.go, which drives its HTTP/serial/db goroutines
// from one signal.NotifyContext + sync.WaitGroup under a single entry
// point; this package is the Session half of that split, leaving
// cmd/radargw/main.go as a thin flag-parsing SessionInner wrapper, per
// original_source's Session/SessionInner division.
package session

import (
	"context"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/wavemark/radargw/internal/config"
	"github.com/wavemark/radargw/internal/monitoring"
	"github.com/wavemark/radargw/internal/radarcore/command"
	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/locator"
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/navdata"
	"github.com/wavemark/radargw/internal/radarcore/netio"
	"github.com/wavemark/radargw/internal/radarcore/registry"
	"github.com/wavemark/radargw/internal/radarcore/report"
	"github.com/wavemark/radargw/internal/radarcore/spoke"
	"github.com/wavemark/radargw/internal/radarcore/trail"
	"github.com/wavemark/radargw/internal/radarcore/wire/furuno"
	"github.com/wavemark/radargw/internal/radarcore/wire/navico"
	"github.com/wavemark/radargw/internal/radarcore/wire/raymarine"
)

// RadarRegistered is invoked once a radar's full pipeline has been
// wired, so a caller (cmd/radargw/main.go) can register it with the web
// front door.
type RadarRegistered func(id uint32, ctrl *controls.Registry, hub *spoke.Hub)

// Session owns the locator engine and every per-radar pipeline it spins
// up. One Session runs for the lifetime of the process.
type Session struct {
	Config   *config.Config
	Registry *registry.Registry
	Counters *monitoring.Counters
	Nav      *navdata.Store
	Trails   *trail.Engine
	OnRadar  RadarRegistered

	// RunID uniquely identifies one process lifetime in log lines, the
	// same way the teacher tags each replay run it starts.
	RunID string

	wg sync.WaitGroup
}

// Run starts the locator engine and blocks until ctx is canceled, then
// waits for every per-radar goroutine it spawned to exit.
func (s *Session) Run(ctx context.Context) error {
	if s.RunID == "" {
		s.RunID = uuid.New().String()
	}
	monitoring.Infof("session: starting run %s", s.RunID)

	replay := s.Config.Replay != nil && *s.Config.Replay
	allowWifi := s.Config.AllowWifi != nil && *s.Config.AllowWifi

	onLocated := func(info *model.RadarInfo) {
		s.Counters.AddRadarDiscovered()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runRadar(ctx, info, replay)
		}()
	}
	engine := &locator.Engine{
		Registry:  s.Registry,
		Brands:    s.brands(onLocated),
		Replay:    replay,
		AllowWifi: allowWifi,
		OnLocated: onLocated,
	}

	err := engine.Run(ctx)
	s.wg.Wait()
	return err
}

func (s *Session) brands(onLocated locator.OnLocated) []locator.Brand {
	all := []locator.Brand{
		locator.NewFurunoLocator(),
		locator.NewRaymarineLocator(),
		locator.NewNavicoLocator(s.Registry, onLocated),
	}
	if s.Config.Brand == nil || *s.Config.Brand == "" {
		return all
	}
	want, ok := model.ParseBrand(*s.Config.Brand)
	var brands []locator.Brand
	for _, b := range all {
		if ok && b.Name() == want {
			brands = append(brands, b)
		}
	}
	return brands
}

// runRadar builds and runs one radar's control registry, report
// receiver, data receiver, and command consumer, and blocks until ctx is
// canceled or the data socket fails.
func (s *Session) runRadar(ctx context.Context, info *model.RadarInfo, replay bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	targetsEnabled := s.Config.Targets == nil || *s.Config.Targets != config.TargetsNone
	ctrl := controls.New(info.ID, targetsEnabled, replay)
	ctrl.Insert(controls.RangeDefinition(info))
	hub := spoke.NewHub()

	if s.OnRadar != nil {
		s.OnRadar(info.ID, ctrl, hub)
	}
	var onRotation func(int64)
	if targetsEnabled && s.Trails != nil {
		go s.Trails.Run(info.ID, ctrl)
		buf := s.Trails.BufferFor(info.ID)
		onRotation = func(ms int64) {
			buf.SetRotationSpeed(ms)
			buf.Decay()
		}
	}

	decoder := s.decoderFor(info)
	if decoder == nil {
		monitoring.Warnf("session: no spoke decoder for radar %s, skipping", info.Key)
		return
	}

	dataConn, err := netio.MulticastListen(info.SpokeDataAddr, nil, replay)
	if err != nil {
		monitoring.Errorf("session: spoke listen %s: %v", info.Key, err)
		return
	}
	defer dataConn.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.runReport(ctx, info, ctrl, replay)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.runCommands(ctx, info, ctrl)
	}()

	receiver := spoke.NewReceiver(info, dataConn, decoder, ctrl, hub, s.Nav, replay, s.Counters, onRotation)
	if err := receiver.Run(ctx); err != nil && ctx.Err() == nil {
		monitoring.Errorf("session: data receiver %s: %v", info.Key, err)
	}
	cancel()
	wg.Wait()
}

func (s *Session) decoderFor(info *model.RadarInfo) spoke.Decoder {
	switch info.Brand {
	case model.BrandFuruno:
		return &furuno.FrameDecoder{SpokesPerRevolution: info.SpokesPerRevolution}
	case model.BrandNavico:
		shape := navico.ShapeGen3Plus
		if info.LocatorID == model.LocatorNavicoBR24 {
			shape = navico.ShapeBR24
		}
		tables := navico.BuildPixelToBlob(info.PixelValues, 14, 15)
		return &navico.FrameDecoder{Shape: shape, PixelTables: tables, Mode: navico.DopplerNone}
	case model.BrandRaymarine:
		return &raymarine.FrameDecoder{SpokesPerRevolution: info.SpokesPerRevolution}
	default:
		return nil
	}
}

func (s *Session) runReport(ctx context.Context, info *model.RadarInfo, ctrl *controls.Registry, replay bool) {
	switch info.Brand {
	case model.BrandNavico:
		reportConn, err := netio.MulticastListen(info.ReportAddr, nil, replay)
		if err != nil {
			monitoring.Errorf("session: report listen %s: %v", info.Key, err)
			return
		}
		defer reportConn.Close()
		cmdConn, _ := netio.MulticastSend(info.SendCommandAddr, info.NICAddr)
		if cmdConn != nil {
			defer cmdConn.Close()
		}
		recv := &report.NavicoReceiver{Info: info, Ctrl: ctrl, Conn: reportConn, Cmd: cmdConn}
		if err := recv.Run(ctx); err != nil && ctx.Err() == nil {
			monitoring.Errorf("session: navico report %s: %v", info.Key, err)
		}
	case model.BrandFuruno:
		recv := &report.FurunoReceiver{Info: info, Ctrl: ctrl}
		if err := recv.Run(ctx); err != nil && ctx.Err() == nil {
			monitoring.Errorf("session: furuno report %s: %v", info.Key, err)
		}
	case model.BrandRaymarine:
		// beacon-driven only, per spec §4.6: nothing to run here.
	}
}

// runCommands drains ctrl's command queue, translates each mutation to
// wire bytes via C8, sends it, and commits the value back into the
// registry as soon as the send succeeds.
func (s *Session) runCommands(ctx context.Context, info *model.RadarInfo, ctrl *controls.Registry) {
	encode := command.EncoderFor(info.Brand)
	if encode == nil {
		return
	}

	var conn *netio.Conn
	switch info.Brand {
	case model.BrandNavico:
		conn, _ = netio.MulticastSend(info.SendCommandAddr, info.NICAddr)
	}
	if conn != nil {
		defer conn.Close()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-ctrl.CommandRequests():
			if !ok {
				return
			}
			wireBytes, err := encode(req.ID, req.Value)
			if err != nil {
				continue
			}
			if sendErr := s.sendCommand(info, conn, wireBytes); sendErr != nil {
				monitoring.Errorf("session: send command %s: %v", info.Key, sendErr)
				continue
			}
			s.Counters.AddControlApplied()
			ctrl.Commit(req.ID, req.Value, req.Auto, nil)
		}
	}
}

func (s *Session) sendCommand(info *model.RadarInfo, conn *netio.Conn, wireBytes []byte) error {
	switch info.Brand {
	case model.BrandNavico:
		if conn == nil {
			return nil
		}
		_, err := conn.WriteTo(wireBytes, info.SendCommandAddr)
		return err
	case model.BrandFuruno:
		tcp, err := net.Dial("tcp", info.Addr.String())
		if err != nil {
			return err
		}
		defer tcp.Close()
		_, err = tcp.Write(wireBytes)
		return err
	default:
		return nil
	}
}
