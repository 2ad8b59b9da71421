package registry

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

func newInfo(key string) *model.RadarInfo {
	return &model.RadarInfo{Key: key, Brand: model.BrandFuruno, Addr: &net.UDPAddr{}}
}

func TestLocatedAllocatesSequentialIDs(t *testing.T) {
	reg := New(nil, false)

	a, isNew := reg.Located(newInfo("a"))
	require.True(t, isNew)
	assert.Equal(t, uint32(1), a.ID)

	b, isNew := reg.Located(newInfo("b"))
	require.True(t, isNew)
	assert.Equal(t, uint32(2), b.ID)
}

func TestLocatedSuppressesDuplicates(t *testing.T) {
	reg := New(nil, false)
	first, _ := reg.Located(newInfo("a"))

	again, isNew := reg.Located(newInfo("a"))
	assert.False(t, isNew)
	assert.Same(t, first, again)
}

func TestLocatedSuppressesDualBSuffixInReplay(t *testing.T) {
	reg := New(nil, true)
	_, isNew := reg.Located(newInfo("radar-B"))
	assert.False(t, isNew)
	_, ok := reg.GetByKey("radar-B")
	assert.False(t, ok)
}

type fakePersistence struct {
	attrs map[string]PersistedAttributes
	stored []string
}

func (f *fakePersistence) Load(key string) (PersistedAttributes, bool) {
	a, ok := f.attrs[key]
	return a, ok
}
func (f *fakePersistence) Store(info *model.RadarInfo) { f.stored = append(f.stored, info.Key) }

func TestLocatedAllocatesIDPastPersistedMax(t *testing.T) {
	p := &fakePersistence{attrs: map[string]PersistedAttributes{
		"a": {ID: 5, UserName: "bridge radar"},
	}}
	reg := New(p, false)

	info, isNew := reg.Located(newInfo("a"))
	require.True(t, isNew)
	assert.Equal(t, uint32(5), info.ID)
	assert.Equal(t, "bridge radar", info.UserName)

	next, isNew := reg.Located(newInfo("b"))
	require.True(t, isNew)
	assert.Equal(t, uint32(6), next.ID)
}

func TestGetActiveFiltersEmptyRanges(t *testing.T) {
	reg := New(nil, false)
	withRanges := newInfo("a")
	withRanges.Ranges = []uint32{1000, 2000}
	withoutRanges := newInfo("b")

	reg.Located(withRanges)
	reg.Located(withoutRanges)

	active := reg.GetActive()
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].Key)
}
