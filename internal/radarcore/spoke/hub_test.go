package spoke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

func TestHubPublishDeliversToAllSubscribers(t *testing.T) {
	h := NewHub()
	id1, ch1 := h.Subscribe()
	id2, ch2 := h.Subscribe()
	defer h.Unsubscribe(id1)
	defer h.Unsubscribe(id2)

	h.Publish(model.RadarMessage{RadarID: 7})

	msg1 := <-ch1
	msg2 := <-ch2
	assert.Equal(t, uint32(7), msg1.RadarID)
	assert.Equal(t, uint32(7), msg2.RadarID)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	id, ch := h.Subscribe()
	h.Unsubscribe(id)

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after Unsubscribe")
}

func TestStatisticsFullRotationResetsCounters(t *testing.T) {
	s := &Statistics{}
	s.AddBroken()
	s.AddMissing(3)
	s.AddReceived(10)

	s.FullRotation()

	snap := s.Snapshot()
	require.Equal(t, uint64(1), snap.TotalRotations)
	assert.Equal(t, uint64(0), snap.BrokenPackets)
	assert.Equal(t, uint64(0), snap.MissingSpokes)
	assert.Equal(t, uint64(0), snap.ReceivedSpokes)
}
