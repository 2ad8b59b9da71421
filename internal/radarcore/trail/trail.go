// Package trail is the minimal ARPA/target-trail collaborator (spec §9,
// A6): it receives Trail-destination control requests from the control
// registry and rotation notifications from the data receiver, and
// maintains a simple Cartesian fading-trail buffer per radar. This is
// deliberately thin -- ARPA tracking itself is an explicit Non-goal; this
// package exists only to give the control registry's Trail destination
// and the data receiver's rotation hook a real collaborator to drive.
package trail

import (
	"sync"

	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
)

// Buffer is a fixed-size Cartesian grid of fade counters, set to full by
// Mark and decayed by one step on each full rotation. Nothing in the
// gateway calls Mark; spoke pixels are not fed into the grid.
type Buffer struct {
	mu       sync.Mutex
	size     int
	cells    []uint8
	enabled  bool
	motion   bool // true = relative motion, false = true motion
	rotation int64
}

func NewBuffer(size int) *Buffer {
	return &Buffer{size: size, cells: make([]uint8, size*size)}
}

func (b *Buffer) SetRotationSpeed(ms int64) {
	b.mu.Lock()
	b.rotation = ms
	b.mu.Unlock()
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	for i := range b.cells {
		b.cells[i] = 0
	}
	b.mu.Unlock()
}

// Decay fades every cell by one step, called once per full rotation.
func (b *Buffer) Decay() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, v := range b.cells {
		if v > 0 {
			b.cells[i] = v - 1
		}
	}
}

// Mark records a return at (x, y); points outside the buffer are ignored.
func (b *Buffer) Mark(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.size || y >= b.size {
		return
	}
	b.cells[y*b.size+x] = 31
}

// Engine owns one Buffer per radar and drains Trail-destination requests
// from each radar's control registry.
type Engine struct {
	mu      sync.Mutex
	buffers map[uint32]*Buffer
}

func NewEngine() *Engine {
	return &Engine{buffers: make(map[uint32]*Buffer)}
}

func (e *Engine) BufferFor(radarID uint32) *Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.buffers[radarID]
	if !ok {
		b = NewBuffer(512)
		e.buffers[radarID] = b
	}
	return b
}

// Run drains ctrl's trail request queue for one radar until the channel
// closes, committing each request back into the registry once applied.
func (e *Engine) Run(radarID uint32, ctrl *controls.Registry) {
	buf := e.BufferFor(radarID)
	for req := range ctrl.TrailRequests() {
		switch req.ID {
		case model.ControlClearTrails:
			buf.Clear()
		case model.ControlTargetTrails:
			buf.mu.Lock()
			buf.enabled = req.Value != 0
			buf.mu.Unlock()
		case model.ControlTrailsMotion:
			buf.mu.Lock()
			buf.motion = req.Value != 0
			buf.mu.Unlock()
		}
		ctrl.Commit(req.ID, req.Value, req.Auto, nil)
	}
}
