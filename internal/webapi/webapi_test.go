package webapi

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wavemark/radargw/internal/radarcore/model"
)

func TestEncodeRadarMessageRoundTrips(t *testing.T) {
	msg := model.RadarMessage{
		RadarID: 7,
		Spokes: []model.Spoke{
			{Angle: 12, HasBearing: true, Bearing: 34, RangeMeters: 1852, Data: []byte{1, 2, 3}},
			{Angle: 13, HasPosition: true, LatE16: 123456, LonE16: -654321, Data: []byte{4, 5}},
		},
	}

	body, err := EncodeRadarMessage(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded jsonRadarMessage
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := jsonRadarMessage{
		Radar: 7,
		Spokes: []jsonSpoke{
			{Angle: 12, Bearing: ptrU32(34), Range: 1852, Data: []byte{1, 2, 3}},
			{Angle: 13, Lat: ptrI64(123456), Lon: ptrI64(-654321), Data: []byte{4, 5}},
		},
	}

	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("radar message round-trip mismatch (-want +got):\n%s", diff)
	}
}

func ptrU32(v uint32) *uint32 { return &v }
func ptrI64(v int64) *int64   { return &v }
