// Package spoke implements the data receiver (spec C7): per-radar spoke
// socket ownership, decode dispatch to the wire codecs, rotation
// bookkeeping, and fan-out of RadarMessage batches to subscribers. The
// broadcast-to-many-clients shape is grounded on the teacher's
// internal/lidar/monitor fan-out pattern; the UDP receive-loop and
// rotation/statistics bookkeeping are grounded on
// internal/lidar/network/listener.go and internal/lidar/sweep/runner.go.
package spoke

import (
	"sync"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

// Statistics tracks per-radar packet health, reset every full rotation.
type Statistics struct {
	mu             sync.Mutex
	BrokenPackets  uint64
	MissingSpokes  uint64
	ReceivedSpokes uint64
	TotalRotations uint64
}

func (s *Statistics) AddBroken()        { s.mu.Lock(); s.BrokenPackets++; s.mu.Unlock() }
func (s *Statistics) AddMissing(n int)  { s.mu.Lock(); s.MissingSpokes += uint64(n); s.mu.Unlock() }
func (s *Statistics) AddReceived(n int) { s.mu.Lock(); s.ReceivedSpokes += uint64(n); s.mu.Unlock() }

// FullRotation increments TotalRotations and resets the per-rotation
// counters, matching the original's Statistics::full_rotation.
func (s *Statistics) FullRotation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalRotations++
	s.BrokenPackets = 0
	s.MissingSpokes = 0
	s.ReceivedSpokes = 0
}

func (s *Statistics) Snapshot() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Statistics{
		BrokenPackets:  s.BrokenPackets,
		MissingSpokes:  s.MissingSpokes,
		ReceivedSpokes: s.ReceivedSpokes,
		TotalRotations: s.TotalRotations,
	}
}

// Hub fans out RadarMessage batches for one radar to any number of
// subscribers (e.g. webapi's /v1/stream clients).
type Hub struct {
	mu          sync.Mutex
	subscribers map[int]chan model.RadarMessage
	nextID      int
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[int]chan model.RadarMessage)}
}

func (h *Hub) Subscribe() (int, <-chan model.RadarMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan model.RadarMessage, 16)
	h.subscribers[id] = ch
	return id, ch
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

func (h *Hub) Publish(msg model.RadarMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
			// slow subscriber; drop this batch rather than block the radar task
		}
	}
}
