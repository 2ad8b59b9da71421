package model

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullRotationAndRPM covers scenario S6: an 8192ms rotation yields
// round(600000/8192) = 73 rpm.
func TestFullRotationAndRPM(t *testing.T) {
	info := &RadarInfo{}
	start := time.Now()

	_, ok := info.FullRotation(start)
	assert.False(t, ok, "first observation has no prior timestamp to diff against")

	ms, ok := info.FullRotation(start.Add(8192 * time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, int64(8192), ms)
	assert.Equal(t, uint32(73), RotationRPM(ms))
}

func TestFullRotationRejectsOutOfWindowDurations(t *testing.T) {
	info := &RadarInfo{}
	start := time.Now()
	info.FullRotation(start)

	_, ok := info.FullRotation(start.Add(100 * time.Millisecond))
	assert.False(t, ok, "below 300ms floor")

	info.FullRotation(start.Add(100 * time.Millisecond))
	_, ok = info.FullRotation(start.Add(20 * time.Second))
	assert.False(t, ok, "above 10000ms ceiling")
}

func TestNewKeyWithAndWithoutSerial(t *testing.T) {
	assert.Equal(t, "Navico-1902501000-A", NewKey(BrandNavico, "1902501000", nil, "A"))
	assert.Equal(t, "Furuno-10.0.0.5", NewKey(BrandFuruno, "", net.ParseIP("10.0.0.5"), ""))
}
