// Package controls implements the per-radar control registry (spec C3):
// typed mutation with scale/offset/clamp/quantize, change-gated broadcast
// to subscribers, and routing of command/trail/target mutations to their
// respective consumers. The validation pipeline is grounded directly on
// mayara's Control::set (src/lib/settings.rs).
package controls

import (
	"strings"
	"sync"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

// Event is published to every "all clients" subscriber whenever a
// control's observable state changes.
type Event struct {
	RadarID uint32
	ID      model.ControlID
	Control model.Control
}

// Request is handed to the command/trail/target consumer queues: a
// mutation that the registry could not apply locally and that the
// consumer must execute against the radar (or trail engine) before
// calling Commit to reflect the outcome.
type Request struct {
	ID          model.ControlID
	Value       float64
	StrValue    string
	Auto        *bool
	Destination model.Destination
}

// Registry holds one radar's live control set.
type Registry struct {
	mu       sync.RWMutex
	radarID  uint32
	replay   bool
	controls map[model.ControlID]*model.Control

	subMu       sync.Mutex
	subscribers map[int]chan Event
	nextSubID   int

	commandCh chan Request
	trailCh   chan Request
	targetCh  chan Request
}

// New builds a registry seeded with the base controls. targetsEnabled
// controls whether trail/target controls are present at all; replay
// forces every control read-only (recorded captures cannot be commanded).
func New(radarID uint32, targetsEnabled, replay bool) *Registry {
	defs := newBaseDefinitions(targetsEnabled)
	controls := make(map[model.ControlID]*model.Control, len(defs))
	for id, def := range defs {
		if replay {
			def.Destination = model.DestReadOnly
			def.ReadOnly = true
		}
		controls[id] = &model.Control{Def: def, Enabled: true}
	}
	return &Registry{
		radarID:     radarID,
		replay:      replay,
		controls:    controls,
		subscribers: make(map[int]chan Event),
		commandCh:   make(chan Request, 32),
		trailCh:     make(chan Request, 32),
		targetCh:    make(chan Request, 32),
	}
}

// Insert adds or overwrites a control definition, used by brand adapters
// to extend the base set (e.g. brand-specific range tables).
func (r *Registry) Insert(def model.ControlDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replay {
		def.Destination = model.DestReadOnly
		def.ReadOnly = true
	}
	r.controls[def.ID] = &model.Control{Def: def, Enabled: true}
}

// Get returns a snapshot copy of one control; ok is false if undefined.
func (r *Registry) Get(id model.ControlID) (model.Control, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controls[id]
	if !ok {
		return model.Control{}, false
	}
	return *c, true
}

// ResolveEnumLabel looks up an enum control's numeric value by its
// case-insensitive label (spec §4.3: "value must be a defined key or its
// label"), grounded on mayara's Control::enum_value_to_index. ok is false
// if the control is undefined, carries no EnumLabels, or label matches
// none of them.
func (r *Registry) ResolveEnumLabel(id model.ControlID, label string) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controls[id]
	if !ok {
		return 0, false
	}
	for value, l := range c.Def.EnumLabels {
		if strings.EqualFold(l, label) {
			return value, true
		}
	}
	return 0, false
}

// GetByName resolves a V3 dialect control name to its current snapshot.
func (r *Registry) GetByName(name string) (model.ControlID, model.Control, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := idByName(definitionsOf(r.controls), name)
	if !ok {
		return 0, model.Control{}, false
	}
	return id, *r.controls[id], true
}

func definitionsOf(m map[model.ControlID]*model.Control) map[model.ControlID]model.ControlDefinition {
	out := make(map[model.ControlID]model.ControlDefinition, len(m))
	for id, c := range m {
		out[id] = c.Def
	}
	return out
}

// Enumerate returns a snapshot of every control, for the REST handshake.
func (r *Registry) Enumerate() map[model.ControlID]model.Control {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[model.ControlID]model.Control, len(r.controls))
	for id, c := range r.controls {
		out[id] = *c
	}
	return out
}

// Subscribe registers a new "all clients" broadcast listener. The caller
// must drain the returned channel; Unsubscribe releases it.
func (r *Registry) Subscribe() (id int, ch <-chan Event) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	id = r.nextSubID
	r.nextSubID++
	c := make(chan Event, 64)
	r.subscribers[id] = c
	return id, c
}

func (r *Registry) Unsubscribe(id int) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	if c, ok := r.subscribers[id]; ok {
		close(c)
		delete(r.subscribers, id)
	}
}

func (r *Registry) broadcast(id model.ControlID, c model.Control) {
	ev := Event{RadarID: r.radarID, ID: id, Control: c}
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for _, ch := range r.subscribers {
		select {
		case ch <- ev:
		default:
			// slow subscriber; drop rather than block the radar task
		}
	}
}

// CommandRequests, TrailRequests and TargetRequests expose the consumer
// queues that MutateFromUser forwards Command/Trail/Target destinations
// to; C8 (command sender) and the trail collaborator read from these.
func (r *Registry) CommandRequests() <-chan Request { return r.commandCh }
func (r *Registry) TrailRequests() <-chan Request   { return r.trailCh }
func (r *Registry) TargetRequests() <-chan Request  { return r.targetCh }

// MutateFromWire applies a value that arrived in a radar report (C6):
// destination checks do not apply here, since the radar itself is
// authoritative. Always broadcasts on change or SendAlways.
func (r *Registry) MutateFromWire(id model.ControlID, wireValue float64) error {
	return r.apply(id, wireValue, nil, nil, nil)
}

// MutateFromWireAuto applies a wire report that also carries an auto flag
// and/or auto value (as Navico's gain/sea/rain reports do).
func (r *Registry) MutateFromWireAuto(id model.ControlID, wireValue float64, auto *bool, autoValue *float64) error {
	return r.apply(id, wireValue, auto, autoValue, nil)
}

// MutateFromUser applies a client-originated mutation request. ReadOnly
// controls are rejected outright; Internal controls are applied directly;
// Command/Trail/Target controls are forwarded to their consumer queue and
// NOT committed here -- the consumer calls Commit once it has handled the
// request (the command consumer after a successful send, the trail
// engine after applying it).
func (r *Registry) MutateFromUser(id model.ControlID, value float64, strValue string, auto *bool) error {
	r.mu.RLock()
	c, ok := r.controls[id]
	if !ok {
		r.mu.RUnlock()
		return &Error{Kind: NotSupported, ID: id}
	}
	dest := c.Def.Destination
	r.mu.RUnlock()

	switch dest {
	case model.DestReadOnly:
		return &Error{Kind: NotSupported, ID: id}
	case model.DestInternal:
		return r.apply(id, value, auto, nil, &strValue)
	case model.DestCommand, model.DestTrail, model.DestTarget:
		// Out-of-range / invalid values are rejected here, before the
		// mutation ever reaches the radar or trail engine (spec scenario
		// S5: no wire command is sent for a rejected value).
		r.mu.RLock()
		def := r.controls[id].Def
		r.mu.RUnlock()
		quantized := value
		if def.Kind == model.KindNumber {
			var err error
			quantized, err = scaleAndQuantize(def, value)
			if err != nil {
				return err
			}
			if len(def.ValidValues) > 0 && !contains(def.ValidValues, quantized) {
				return &Error{Kind: Invalid, ID: id, Value: quantized}
			}
		}
		if auto != nil && *auto && !def.HasAuto {
			return &Error{Kind: NoAuto, ID: id}
		}

		req := Request{ID: id, Value: quantized, StrValue: strValue, Auto: auto, Destination: dest}
		var ch chan Request
		switch dest {
		case model.DestCommand:
			ch = r.commandCh
		case model.DestTrail:
			ch = r.trailCh
		case model.DestTarget:
			ch = r.targetCh
		}
		select {
		case ch <- req:
			return nil
		default:
			return &Error{Kind: Invalid, ID: id}
		}
	default:
		return &Error{Kind: NotSupported, ID: id}
	}
}

// Commit applies a value that a command/trail/target consumer confirmed
// was accepted by the radar, and broadcasts the resulting change.
func (r *Registry) Commit(id model.ControlID, value float64, auto *bool, autoValue *float64) error {
	return r.apply(id, value, auto, autoValue, nil)
}

// apply is the shared scale/clamp/quantize/commit pipeline, grounded on
// mayara's Control::set.
func (r *Registry) apply(id model.ControlID, rawValue float64, auto *bool, autoValue *float64, strValue *string) error {
	r.mu.Lock()
	c, ok := r.controls[id]
	if !ok {
		r.mu.Unlock()
		return &Error{Kind: NotSupported, ID: id}
	}
	def := c.Def

	value := rawValue
	if def.Kind == model.KindNumber {
		var err error
		value, err = scaleAndQuantize(def, value)
		if err != nil {
			r.mu.Unlock()
			return err
		}
		if len(def.ValidValues) > 0 && !contains(def.ValidValues, value) {
			r.mu.Unlock()
			return &Error{Kind: Invalid, ID: id, Value: value}
		}
	}

	if auto != nil && *auto && !def.HasAuto {
		r.mu.Unlock()
		return &Error{Kind: NoAuto, ID: id}
	}

	changed := c.Value != value || c.Auto != boolOr(auto, c.Auto) ||
		(autoValue != nil && (c.AutoValue == nil || *c.AutoValue != *autoValue))

	c.Value = value
	if strValue != nil {
		c.StrValue = *strValue
		if *strValue != c.Description {
			changed = true
		}
		c.Description = *strValue
	}
	if auto != nil {
		c.Auto = *auto
	}
	if autoValue != nil {
		c.AutoValue = autoValue
	}

	needsResend := changed || c.NeedsRefresh || def.SendAlways
	c.NeedsRefresh = false
	snapshot := *c
	r.mu.Unlock()

	if needsResend {
		r.broadcast(id, snapshot)
	}
	return nil
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

func contains(vs []float64, v float64) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

// scaleAndQuantize implements the wire-offset subtraction, wire-scale
// factor, offset-minus-one wraparound, min/max clamp, and step
// quantization rules from spec §4.3 and original Control::set.
func scaleAndQuantize(def model.ControlDefinition, value float64) (float64, error) {
	if def.WireOffset > 0 {
		value -= def.WireOffset
	}
	if def.WireScaleFactor != 0 && def.WireScaleFactor != def.Max {
		value = value * def.Max / def.WireScaleFactor
	}
	if def.WireOffset == -1 && value > def.Max && value <= 2*def.Max {
		value -= 2 * def.Max
	}

	if def.Min != 0 || def.Max != 0 {
		if value < def.Min {
			return 0, &Error{Kind: TooLow, ID: def.ID, Value: value, Bound: def.Min}
		}
		if value > def.Max {
			return 0, &Error{Kind: TooHigh, ID: def.ID, Value: value, Bound: def.Max}
		}
	}

	switch def.Step {
	case 0:
		// no quantization configured
	case 0.1:
		value = float64(int32(value*10)) / 10
	case 1.0:
		value = float64(int32(value))
	default:
		value = round(value/def.Step) * def.Step
	}
	return value, nil
}

func round(f float64) float64 {
	if f >= 0 {
		return float64(int64(f + 0.5))
	}
	return float64(int64(f - 0.5))
}
