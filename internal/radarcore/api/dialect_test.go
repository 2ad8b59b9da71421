package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
)

func TestDecodeIDV1ParsesNumericDiscriminant(t *testing.T) {
	reg := controls.New(1, true, false)
	id, ok := DecodeID(V1, reg, "0")
	require.True(t, ok)
	assert.Equal(t, model.ControlRange, id)
}

func TestDecodeIDV1RejectsUnknownID(t *testing.T) {
	reg := controls.New(1, true, false)
	_, ok := DecodeID(V1, reg, "99999")
	assert.False(t, ok)
}

func TestDecodeIDV3ResolvesByName(t *testing.T) {
	reg := controls.New(1, true, false)
	id, ok := DecodeID(V3, reg, "gain")
	require.True(t, ok)
	assert.Equal(t, model.ControlGain, id)
}

func TestEncodeReplyCarriesErrorMessage(t *testing.T) {
	reg := controls.New(1, true, false)
	c, _ := reg.Get(model.ControlGain)
	err := &controls.Error{Kind: controls.TooHigh, ID: model.ControlGain, Bound: 100}
	reply := EncodeReply(V1, reg, model.ControlGain, c, err)
	assert.NotEmpty(t, reply.Error)
}

func TestEncodeReplyV3UsesControlName(t *testing.T) {
	reg := controls.New(1, true, false)
	c, _ := reg.Get(model.ControlGain)
	reply := EncodeReply(V3, reg, model.ControlGain, c, nil)
	assert.Equal(t, "gain", reply.ID)
}
