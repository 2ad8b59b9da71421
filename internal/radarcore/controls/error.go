package controls

import (
	"fmt"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

// ErrorKind enumerates the ControlError subtypes named in the error
// handling design: each is surfaced to the originating client in the
// reply and never propagated further up the stack.
type ErrorKind int

const (
	NotSupported ErrorKind = iota
	TooLow
	TooHigh
	Invalid
	NoAuto
	NoHeading
	NoPosition
)

func (k ErrorKind) String() string {
	switch k {
	case NotSupported:
		return "NotSupported"
	case TooLow:
		return "TooLow"
	case TooHigh:
		return "TooHigh"
	case Invalid:
		return "Invalid"
	case NoAuto:
		return "NoAuto"
	case NoHeading:
		return "NoHeading"
	case NoPosition:
		return "NoPosition"
	default:
		return "Unknown"
	}
}

// Error is a concrete struct implementing the error interface; callers
// that need to branch on Kind assert the error to *Error.
type Error struct {
	Kind  ErrorKind
	ID    model.ControlID
	Value float64
	Bound float64
}

func (e *Error) Error() string {
	switch e.Kind {
	case TooLow:
		return fmt.Sprintf("control %d: value %v below minimum %v", e.ID, e.Value, e.Bound)
	case TooHigh:
		return fmt.Sprintf("control %d: value %v above maximum %v", e.ID, e.Value, e.Bound)
	case Invalid:
		return fmt.Sprintf("control %d: invalid value %v", e.ID, e.Value)
	case NoAuto:
		return fmt.Sprintf("control %d: does not support auto mode", e.ID)
	case NotSupported:
		return fmt.Sprintf("control %d: not supported by this radar", e.ID)
	case NoHeading:
		return "no heading available"
	case NoPosition:
		return "no position available"
	default:
		return "control error"
	}
}
