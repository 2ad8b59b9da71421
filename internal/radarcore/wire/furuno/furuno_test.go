package furuno

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadataHeader(t *testing.T) {
	t.Run("scenario S2", func(t *testing.T) {
		data := []byte{0x02, 0x95, 0, 1, 0, 0, 0, 0, 0x30, 0x11, 0x74, 0xDB, 0x06, 0x00, 0xF0, 0x09}
		meta, err := ParseMetadataHeader(data)
		require.NoError(t, err)
		assert.Equal(t, uint32(8), meta.SweepCount)
		assert.Equal(t, uint32(884), meta.SweepLen)
		assert.Equal(t, uint8(3), meta.Encoding)
		assert.Equal(t, uint8(0), meta.HaveHeading)
		assert.Equal(t, uint8(6), meta.RangeIndex)
	})

	t.Run("rejects short header", func(t *testing.T) {
		_, err := ParseMetadataHeader(make([]byte, 10))
		assert.Error(t, err)
	})

	t.Run("rejects bad discriminator", func(t *testing.T) {
		data := make([]byte, 16)
		data[0] = 0x01
		_, err := ParseMetadataHeader(data)
		assert.Error(t, err)
	})
}

func TestDecodeEncoding1(t *testing.T) {
	t.Run("scenario S3", func(t *testing.T) {
		out, used, err := decodeEncoding1([]byte{0x10, 0x07, 0x00, 0x05}, 10)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x10, 0x10, 0x10, 0x10, 0, 0, 0, 0, 0, 0}, out)
		assert.Equal(t, 4, used)
	})
}

func TestDecodeEncoding0RawCopy(t *testing.T) {
	out, used, err := decodeEncoding0([]byte{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)
	assert.Equal(t, 4, used)
}

func TestDecodeEncoding2CopiesFromPrevious(t *testing.T) {
	prev := []byte{9, 9, 9, 9}
	// 0x03: odd, repeat = 1, copies one byte from prev[0]
	out, _, err := decodeEncoding2([]byte{0x03}, 4, prev)
	require.NoError(t, err)
	assert.Equal(t, byte(9), out[0])
}

func TestDecodeEncoding3StrengthAndRepeat(t *testing.T) {
	// 0x04: b&3==0, sets strength to 4 and emits once.
	out, _, err := decodeEncoding3([]byte{0x04}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04}, out)
}

func TestToPixel(t *testing.T) {
	assert.Equal(t, byte(0x3F), ToPixel(0xFF&^0x03))
	assert.Equal(t, byte(0), ToPixel(0x03))
}

func TestDecodeSweepEncoding2FallsBackToEncoding1OnFirstSweep(t *testing.T) {
	out, _, err := DecodeSweep(2, []byte{0x10, 0x07, 0x00, 0x05}, 10, nil, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x10, 0x10, 0x10, 0, 0, 0, 0, 0, 0}, out)
}
