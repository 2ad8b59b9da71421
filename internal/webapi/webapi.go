// Package webapi is the thin HTTP front door (spec §6.3, A7) that
// exercises the control registry's V1/V3 dialects and streams
// RadarMessage bytes to clients. It is deliberately minimal -- the
// HTTP/WebSocket front-end's routing and serialization are an explicit
// Non-goal of the core -- but it gives api.Dialect and the spoke hub a
// real consumer to drive in tests. Grounded on the teacher's
// internal/api handler-registration shape (net/http, no framework).
package webapi

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/wavemark/radargw/internal/radarcore/api"
	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/registry"
	"github.com/wavemark/radargw/internal/radarcore/spoke"
	"github.com/wavemark/radargw/internal/version"
)

// Server wires the registry and per-radar control/spoke hubs into a
// net/http mux. Callers register the Registry's per-radar Registry and
// Hub instances via RegisterRadar as each is discovered.
type Server struct {
	mux     *http.ServeMux
	radars  *registry.Registry
	ctrls   map[uint32]*controls.Registry
	hubs    map[uint32]*spoke.Hub
}

func NewServer(radars *registry.Registry) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		radars: radars,
		ctrls:  make(map[uint32]*controls.Registry),
		hubs:   make(map[uint32]*spoke.Hub),
	}
	s.mux.HandleFunc("/v1/radars", s.handleListRadars)
	s.mux.HandleFunc("/v1/controls", s.handleControls(api.V1))
	s.mux.HandleFunc("/v3/controls", s.handleControls(api.V3))
	s.mux.HandleFunc("/v1/stream", s.handleStream)
	s.mux.HandleFunc("/v1/version", s.handleVersion)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// RegisterRadar makes a newly discovered radar's control registry and
// spoke hub reachable over HTTP.
func (s *Server) RegisterRadar(id uint32, ctrl *controls.Registry, hub *spoke.Hub) {
	s.ctrls[id] = ctrl
	s.hubs[id] = hub
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(struct {
		Version   string `json:"version"`
		GitSHA    string `json:"gitSha"`
		BuildTime string `json:"buildTime"`
	}{version.Version, version.GitSHA, version.BuildTime})
}

func (s *Server) handleListRadars(w http.ResponseWriter, r *http.Request) {
	active := s.radars.GetActive()
	type radarSummary struct {
		ID    uint32 `json:"id"`
		Key   string `json:"key"`
		Brand string `json:"brand"`
	}
	out := make([]radarSummary, 0, len(active))
	for _, ri := range active {
		ri.Mu.RLock()
		out = append(out, radarSummary{ID: ri.ID, Key: ri.Key, Brand: ri.Brand.String()})
		ri.Mu.RUnlock()
	}
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleControls(dialect api.Dialect) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		radarID, ok := parseRadarID(r)
		if !ok {
			http.Error(w, "missing or invalid radar id", http.StatusBadRequest)
			return
		}
		ctrl, ok := s.ctrls[radarID]
		if !ok {
			http.NotFound(w, r)
			return
		}

		if r.Method == http.MethodGet {
			snapshot := ctrl.Enumerate()
			replies := make([]api.Reply, 0, len(snapshot))
			for id, c := range snapshot {
				replies = append(replies, api.EncodeReply(dialect, ctrl, id, c, nil))
			}
			json.NewEncoder(w).Encode(replies)
			return
		}

		var req api.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		id, ok := api.DecodeID(dialect, ctrl, req.ID)
		if !ok {
			http.Error(w, "unknown control id", http.StatusNotFound)
			return
		}
		value, ok := controlValue(ctrl, id, req.Value)
		if !ok {
			http.Error(w, "invalid control value", http.StatusBadRequest)
			return
		}
		err := ctrl.MutateFromUser(id, value, "", req.Auto)
		c, _ := ctrl.Get(id)
		json.NewEncoder(w).Encode(api.EncodeReply(dialect, ctrl, id, c, err))
	}
}

// controlValue accepts a JSON number, a numeric string, or an enum
// control's case-insensitive label (spec §6.3/§4.3) and resolves it to the
// float64 MutateFromUser expects. ok is false for anything else.
func controlValue(ctrl *controls.Registry, id model.ControlID, raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return ctrl.ResolveEnumLabel(id, v)
	default:
		return 0, false
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	radarID, ok := parseRadarID(r)
	if !ok {
		http.Error(w, "missing or invalid radar id", http.StatusBadRequest)
		return
	}
	hub, ok := s.hubs[radarID]
	if !ok {
		http.NotFound(w, r)
		return
	}

	flusher, _ := w.(http.Flusher)
	id, ch := hub.Subscribe()
	defer hub.Unsubscribe(id)

	w.Header().Set("Content-Type", "application/octet-stream")
	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			body, err := EncodeRadarMessage(msg)
			if err != nil {
				continue
			}
			var lenBuf [4]byte
			binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
			w.Write(lenBuf[:])
			w.Write(body)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func parseRadarID(r *http.Request) (uint32, bool) {
	q := r.URL.Query().Get("radar")
	if q == "" {
		return 0, false
	}
	var id uint32
	for _, c := range q {
		if c < '0' || c > '9' {
			return 0, false
		}
		id = id*10 + uint32(c-'0')
	}
	return id, true
}

// jsonSpoke mirrors the wire shape of spec §6.2's Spoke message.
type jsonSpoke struct {
	Range   uint32  `json:"range"`
	Angle   uint32  `json:"angle"`
	Bearing *uint32 `json:"bearing,omitempty"`
	Lat     *int64  `json:"lat,omitempty"`
	Lon     *int64  `json:"lon,omitempty"`
	Time    *uint64 `json:"time,omitempty"`
	Data    []byte  `json:"data"`
}

type jsonRadarMessage struct {
	Radar  uint32      `json:"radar"`
	Spokes []jsonSpoke `json:"spokes"`
}

// EncodeRadarMessage renders a RadarMessage as the JSON body of one
// stream frame (spec §6.2); handleStream writes the 4-byte big-endian
// length prefix in front of it. A protobuf schema was not reachable within this
// module's grounding (see DESIGN.md), so the envelope is JSON.
func EncodeRadarMessage(msg model.RadarMessage) ([]byte, error) {
	out := jsonRadarMessage{Radar: msg.RadarID}
	for _, s := range msg.Spokes {
		js := jsonSpoke{Range: s.RangeMeters, Angle: s.Angle, Data: s.Data}
		if s.HasBearing {
			b := s.Bearing
			js.Bearing = &b
		}
		if s.HasPosition {
			lat, lon := s.LatE16, s.LonE16
			js.Lat, js.Lon = &lat, &lon
		}
		if s.HasTimeMs {
			t := s.TimeMillis
			js.Time = &t
		}
		out.Spokes = append(out.Spokes, js)
	}
	return json.Marshal(out)
}
