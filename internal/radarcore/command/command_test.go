package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

func TestNavicoEncodesGain(t *testing.T) {
	buf, err := Navico(model.ControlGain, 55)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 1, 55}, buf)
}

func TestNavicoRejectsUnsupportedControl(t *testing.T) {
	_, err := Navico(model.ControlBearingAlignment, 0)
	assert.Error(t, err)
}

func TestFurunoEncodesRangeAsLittleEndian(t *testing.T) {
	buf, err := Furuno(model.ControlRange, 1852)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), buf[0])
	assert.Equal(t, byte(0x10), buf[1])
	assert.Equal(t, []byte{0x3c, 0x07, 0x00, 0x00}, buf[2:])
}

func TestEncoderForRaymarineIsNil(t *testing.T) {
	assert.Nil(t, EncoderFor(model.BrandRaymarine))
}

func TestEncoderForKnownBrands(t *testing.T) {
	assert.NotNil(t, EncoderFor(model.BrandNavico))
	assert.NotNil(t, EncoderFor(model.BrandFuruno))
}
