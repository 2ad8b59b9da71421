package controls

import (
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/units"
)

// RangeDefinition returns the base Range control definition with Min/Max
// set for info's brand, and for Navico, for its beacon shape. The
// original keeps a compiled-in per-model range-stop table for Furuno
// (settings.rs RANGE_TABLE_DRS/_NXT/_NXT_EXTENDED/_FAR) and a single
// dual-range ceiling for Navico's 4G/HALO beacons; the model itself is
// not known until reports arrive (Furuno's live stops are tracked
// separately in RadarInfo.Ranges), so at discovery time this gives each
// brand one ceiling rather than a full per-model table, with Navico's
// dual-range beacon (info.Which != "") as the one case callers must get
// right: scenario S1 pins it at 96 NM.
func RangeDefinition(info *model.RadarInfo) model.ControlDefinition {
	def := model.ControlDefinition{
		ID: model.ControlRange, Name: "range", Kind: model.KindNumber,
		Destination: model.DestCommand, Unit: "m",
	}
	switch info.Brand {
	case model.BrandNavico:
		if info.Which != "" {
			def.Max = units.NauticalMilesToMeters(96) // 4G/HALO dual-range beacon
		} else {
			def.Max = units.NauticalMilesToMeters(36) // BR24 and single-range Navico
		}
	case model.BrandFuruno:
		def.Max = units.NauticalMilesToMeters(36) // RANGE_TABLE_DRS ceiling for an unknown model
	case model.BrandRaymarine:
		def.Min = 50
		def.Max = units.NauticalMilesToMeters(36)
	}
	return def
}
