// Package registry implements the process-wide radar registry (spec C4):
// identity-keyed map, monotonic id allocation, and persistence overlay.
// Grounded on mayara's SharedRadars (original_source radar/mod.rs).
package registry

import (
	"strings"
	"sync"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

// PersistedAttributes are the fields a Persistence implementation may
// remember across restarts for a given key (spec §6.5).
type PersistedAttributes struct {
	ID       uint32
	UserName string
	Model    string
	Ranges   []uint32
}

// Persistence is the collaborator interface backing load/store; the
// gatewaydb package provides the SQLite-backed implementation.
type Persistence interface {
	Load(key string) (PersistedAttributes, bool)
	Store(info *model.RadarInfo)
}

// noopPersistence is used when no Persistence is configured, so the
// registry never needs a nil check on the hot path.
type noopPersistence struct{}

func (noopPersistence) Load(string) (PersistedAttributes, bool) { return PersistedAttributes{}, false }
func (noopPersistence) Store(*model.RadarInfo)                  {}

// Registry is the process-wide DiscoveredRadars map.
type Registry struct {
	mu     sync.RWMutex
	radars map[string]*model.RadarInfo
	persist Persistence
	replay  bool
}

func New(persist Persistence, replay bool) *Registry {
	if persist == nil {
		persist = noopPersistence{}
	}
	return &Registry{
		radars:  make(map[string]*model.RadarInfo),
		persist: persist,
		replay:  replay,
	}
}

// Located registers a newly discovered radar. If info.Key is already
// known, returns (existing info, false) -- duplicate suppression, per
// invariant 7 (locator idempotence). In replay mode, keys ending in "-B"
// (the second antenna of a dual-range radar) are suppressed entirely.
func (r *Registry) Located(info *model.RadarInfo) (*model.RadarInfo, bool) {
	if r.replay && strings.HasSuffix(info.Key, "-B") {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.radars[info.Key]; ok {
		return existing, false
	}

	maxID := uint32(0)
	for _, ri := range r.radars {
		if ri.ID > maxID {
			maxID = ri.ID
		}
	}
	if persisted, ok := r.persist.Load(info.Key); ok {
		if persisted.ID > maxID {
			maxID = persisted.ID
		}
		if info.ID == 0 && persisted.ID != 0 {
			info.ID = persisted.ID
		}
		info.UserName = persisted.UserName
		if persisted.Model != "" {
			info.ModelName = persisted.Model
		}
		if len(persisted.Ranges) > 0 {
			info.Ranges = persisted.Ranges
		}
	}

	if info.ID == 0 {
		info.ID = maxID + 1
	}

	r.radars[info.Key] = info
	r.persist.Store(info)
	return info, true
}

// Update unconditionally overwrites the stored info for info.Key and
// persists it.
func (r *Registry) Update(info *model.RadarInfo) {
	r.mu.Lock()
	r.radars[info.Key] = info
	r.mu.Unlock()
	r.persist.Store(info)
}

// GetActive returns every radar whose handshake has completed, i.e. whose
// Ranges is non-empty.
func (r *Registry) GetActive() []*model.RadarInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.RadarInfo, 0, len(r.radars))
	for _, ri := range r.radars {
		ri.Mu.RLock()
		active := len(ri.Ranges) > 0
		ri.Mu.RUnlock()
		if active {
			out = append(out, ri)
		}
	}
	return out
}

// GetByKey and GetByID support direct lookups (e.g. webapi routing).
func (r *Registry) GetByKey(key string) (*model.RadarInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ri, ok := r.radars[key]
	return ri, ok
}

func (r *Registry) GetByID(id uint32) (*model.RadarInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ri := range r.radars {
		if ri.ID == id {
			return ri, true
		}
	}
	return nil, false
}

// All returns a snapshot slice of every known radar, active or not.
func (r *Registry) All() []*model.RadarInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.RadarInfo, 0, len(r.radars))
	for _, ri := range r.radars {
		out = append(out, ri)
	}
	return out
}
