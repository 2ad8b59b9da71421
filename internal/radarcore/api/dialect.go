// Package api implements the two control-API wire dialects (spec §6.3).
// Dialect selection is a parameter on each encode/decode call, never a
// global or thread-local, so both dialects can be exercised in the same
// process and in the same test binary.
package api

import (
	"strconv"

	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
)

// Dialect selects how ControlID is represented on the wire.
type Dialect int

const (
	V1 Dialect = iota // numeric discriminant, encoded as a decimal string
	V3                // camelCase control name
)

// Request mirrors the control-mutation request shape shared by both
// dialects: { id, value, auto?, enabled? }.
type Request struct {
	ID      string   `json:"id"`
	Value   any      `json:"value"`
	Auto    *bool    `json:"auto,omitempty"`
	Enabled *bool    `json:"enabled,omitempty"`
}

// Reply adds the optional error/dynamicReadOnly fields to the same shape.
type Reply struct {
	ID              string  `json:"id"`
	Value           any     `json:"value"`
	Auto            *bool   `json:"auto,omitempty"`
	Enabled         *bool   `json:"enabled,omitempty"`
	Error           string  `json:"error,omitempty"`
	DynamicReadOnly *bool   `json:"dynamicReadOnly,omitempty"`
}

// DecodeID resolves a dialect-encoded id string to a ControlID using the
// registry's name table for V3, or parsing the decimal discriminant for
// V1. Both dialects accept numeric or string-numeric input per spec.
func DecodeID(dialect Dialect, reg *controls.Registry, idStr string) (model.ControlID, bool) {
	switch dialect {
	case V3:
		if id, _, ok := reg.GetByName(idStr); ok {
			return id, ok
		}
		fallthrough
	default:
		n, err := strconv.Atoi(idStr)
		if err != nil {
			return 0, false
		}
		id := model.ControlID(n)
		if _, ok := reg.Get(id); !ok {
			return 0, false
		}
		return id, true
	}
}

// EncodeID renders a ControlID in the requested dialect.
func EncodeID(dialect Dialect, reg *controls.Registry, id model.ControlID) string {
	switch dialect {
	case V3:
		if def, ok := reg.Get(id); ok {
			return def.Def.Name
		}
		return strconv.Itoa(int(id))
	default:
		return strconv.Itoa(int(id))
	}
}

// EncodeReply builds a Reply for a mutation outcome in the requested
// dialect; err may be nil (success) or a *controls.Error.
func EncodeReply(dialect Dialect, reg *controls.Registry, id model.ControlID, c model.Control, err error) Reply {
	reply := Reply{
		ID:      EncodeID(dialect, reg, id),
		Value:   c.EffectiveValue(),
		Enabled: boolPtr(c.Enabled),
	}
	if c.Auto {
		reply.Auto = boolPtr(true)
	}
	if c.DynamicReadOnly {
		reply.DynamicReadOnly = boolPtr(true)
	}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply
}

func boolPtr(b bool) *bool { return &b }
