package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

// TestMutateFromUserRejectsOutOfRange covers scenario S5: Gain in
// [0,100], submitting 150 yields TooHigh and leaves the stored value
// unchanged.
func TestMutateFromUserRejectsOutOfRange(t *testing.T) {
	reg := New(1, true, false)

	err := reg.MutateFromUser(model.ControlGain, 150, "", nil)
	require.Error(t, err)
	ctrlErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, TooHigh, ctrlErr.Kind)
	assert.Equal(t, 100.0, ctrlErr.Bound)

	c, ok := reg.Get(model.ControlGain)
	require.True(t, ok)
	assert.Equal(t, 0.0, c.Value)
}

func TestMutateFromUserReadOnlyIsRejected(t *testing.T) {
	reg := New(1, true, false)
	err := reg.MutateFromUser(model.ControlModelName, 0, "HALO", nil)
	require.Error(t, err)
	ctrlErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, NotSupported, ctrlErr.Kind)
}

func TestMutateFromUserInternalAppliesDirectly(t *testing.T) {
	reg := New(1, true, false)
	err := reg.MutateFromUser(model.ControlUserName, 0, "bridge", nil)
	require.NoError(t, err)
	c, ok := reg.Get(model.ControlUserName)
	require.True(t, ok)
	assert.Equal(t, "bridge", c.StrValue)
}

func TestMutateFromUserCommandForwardsToQueue(t *testing.T) {
	reg := New(1, true, false)
	err := reg.MutateFromUser(model.ControlGain, 42, "", nil)
	require.NoError(t, err)

	select {
	case req := <-reg.CommandRequests():
		assert.Equal(t, model.ControlGain, req.ID)
		assert.Equal(t, 42.0, req.Value)
	default:
		t.Fatal("expected a command request to be queued")
	}

	// the value is not committed until the command sender calls Commit.
	c, _ := reg.Get(model.ControlGain)
	assert.Equal(t, 0.0, c.Value)
}

func TestReplayForcesEveryControlReadOnly(t *testing.T) {
	reg := New(1, true, true)
	err := reg.MutateFromUser(model.ControlGain, 50, "", nil)
	require.Error(t, err)
	ctrlErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, NotSupported, ctrlErr.Kind)
}

func TestScaleAndQuantizeStepPointOne(t *testing.T) {
	def := model.ControlDefinition{ID: model.ControlBearingAlignment, Min: -180, Max: 180, Step: 0.1}
	v, err := scaleAndQuantize(def, 12.37)
	require.NoError(t, err)
	assert.Equal(t, 12.3, v)
}

func TestScaleAndQuantizeWireScaleFactor(t *testing.T) {
	def := model.ControlDefinition{ID: model.ControlGain, Min: 0, Max: 100, WireScaleFactor: 255}
	v, err := scaleAndQuantize(def, 255)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
}

func TestMutateFromWireBroadcastsOnChange(t *testing.T) {
	reg := New(1, true, false)
	id, ch := reg.Subscribe()
	defer reg.Unsubscribe(id)

	require.NoError(t, reg.MutateFromWire(model.ControlGain, 40))
	ev := <-ch
	assert.Equal(t, model.ControlGain, ev.ID)
	assert.Equal(t, 40.0, ev.Control.Value)
}
