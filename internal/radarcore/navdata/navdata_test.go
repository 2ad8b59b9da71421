package navdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreStartsUnset(t *testing.T) {
	s := NewStore()
	_, ok := s.HeadingTrue()
	assert.False(t, ok)
	_, _, ok = s.Position()
	assert.False(t, ok)
}

func TestApplySentenceHDTSetsHeading(t *testing.T) {
	s := NewStore()
	applySentence("$GPHDT,123.4,T*00", s)
	heading, ok := s.HeadingTrue()
	require.True(t, ok)
	assert.InDelta(t, 123.4, heading, 0.0001)
}

func TestApplySentenceGGASetsPosition(t *testing.T) {
	s := NewStore()
	applySentence("$GPGGA,120000,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47", s)
	lat, lon, ok := s.Position()
	require.True(t, ok)
	assert.InDelta(t, 48.1173, lat, 0.001)
	assert.InDelta(t, 11.5167, lon, 0.001)
}

func TestApplySentenceGGATooShortIsIgnored(t *testing.T) {
	s := NewStore()
	applySentence("$GPGGA,120000,4807.038,N,01131.000", s)
	_, _, ok := s.Position()
	assert.False(t, ok, "a GGA sentence missing the E/W field must not panic or set a position")
}

func TestApplySentenceIgnoresNonDollarLines(t *testing.T) {
	s := NewStore()
	applySentence("not a sentence", s)
	_, ok := s.HeadingTrue()
	assert.False(t, ok)
}
