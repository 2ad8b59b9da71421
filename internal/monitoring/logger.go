// Package monitoring is the gateway's structured logging and counter
// collaborator (spec SPEC_FULL A1/A4): a single replaceable logger used
// by every radarcore subsystem, plus the packet/spoke/control counters
// exposed for scraping. Grounded on the teacher's own Logf/SetLogger
// package-level-logger shim.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

func Infof(format string, v ...interface{})  { Logf("INFO "+format, v...) }
func Warnf(format string, v ...interface{})  { Logf("WARN "+format, v...) }
func Errorf(format string, v ...interface{}) { Logf("ERROR "+format, v...) }

// Counters holds the process-wide packet/spoke/control counters exposed
// by the metrics endpoint (A9). All fields use atomic ops so any radar
// task can increment them without a shared lock.
type Counters struct {
	PacketsReceived  int64
	SpokesReceived   int64
	ControlsApplied  int64
	BrokenPackets    int64
	RadarsDiscovered int64
}

func (c *Counters) AddPacket()         { atomic.AddInt64(&c.PacketsReceived, 1) }
func (c *Counters) AddSpokes(n int)    { atomic.AddInt64(&c.SpokesReceived, int64(n)) }
func (c *Counters) AddControlApplied() { atomic.AddInt64(&c.ControlsApplied, 1) }
func (c *Counters) AddBroken()         { atomic.AddInt64(&c.BrokenPackets, 1) }
func (c *Counters) AddRadarDiscovered() { atomic.AddInt64(&c.RadarsDiscovered, 1) }

// Snapshot is a point-in-time copy safe to serialize or format.
type Snapshot struct {
	PacketsReceived  int64
	SpokesReceived   int64
	ControlsApplied  int64
	BrokenPackets    int64
	RadarsDiscovered int64
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		PacketsReceived:  atomic.LoadInt64(&c.PacketsReceived),
		SpokesReceived:   atomic.LoadInt64(&c.SpokesReceived),
		ControlsApplied:  atomic.LoadInt64(&c.ControlsApplied),
		BrokenPackets:    atomic.LoadInt64(&c.BrokenPackets),
		RadarsDiscovered: atomic.LoadInt64(&c.RadarsDiscovered),
	}
}
