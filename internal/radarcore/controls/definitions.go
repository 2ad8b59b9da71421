package controls

import "github.com/wavemark/radargw/internal/radarcore/model"

// newBaseDefinitions returns the control definitions every radar carries
// regardless of brand: Power is always present (mirroring the upstream
// project, which inserts it unconditionally), ModelName/UserName are
// mandatory metadata controls, and the four trail/target controls are
// added only when targets mode is not "none".
func newBaseDefinitions(targetsEnabled bool) map[model.ControlID]model.ControlDefinition {
	defs := map[model.ControlID]model.ControlDefinition{
		model.ControlPower: {
			ID: model.ControlPower, Name: "power", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: 0, Max: 3, Step: 1,
			ValidValues: []float64{1, 2},
		},
		model.ControlModelName: {
			ID: model.ControlModelName, Name: "modelName", Kind: model.KindString,
			Destination: model.DestReadOnly, ReadOnly: true,
		},
		model.ControlUserName: {
			ID: model.ControlUserName, Name: "userName", Kind: model.KindString,
			Destination: model.DestInternal,
		},
		model.ControlRange: {
			ID: model.ControlRange, Name: "range", Kind: model.KindNumber,
			Destination: model.DestCommand, Unit: "m",
		},
		model.ControlGain: {
			ID: model.ControlGain, Name: "gain", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: 0, Max: 100, Step: 1,
			HasAuto: true, HasAutoAdjust: true,
		},
		model.ControlSea: {
			ID: model.ControlSea, Name: "sea", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: 0, Max: 100, Step: 1, HasAuto: true,
		},
		model.ControlRain: {
			ID: model.ControlRain, Name: "rain", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: 0, Max: 100, Step: 1,
		},
		model.ControlRotationSpeed: {
			ID: model.ControlRotationSpeed, Name: "rotationSpeed", Kind: model.KindNumber,
			Destination: model.DestReadOnly, ReadOnly: true, Unit: "rpm",
		},
		model.ControlBearingAlignment: {
			ID: model.ControlBearingAlignment, Name: "bearingAlignment", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: -180, Max: 180, Step: 0.1,
		},
		model.ControlInterferenceRejection: {
			ID: model.ControlInterferenceRejection, Name: "interferenceRejection", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: 0, Max: 3, Step: 1,
			EnumLabels: map[float64]string{0: "Off", 1: "Low", 2: "Medium", 3: "High"},
		},
		model.ControlTargetExpansion: {
			ID: model.ControlTargetExpansion, Name: "targetExpansion", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: 0, Max: 1, Step: 1,
			EnumLabels: map[float64]string{0: "Off", 1: "On"},
		},
		model.ControlNoiseRejection: {
			ID: model.ControlNoiseRejection, Name: "noiseRejection", Kind: model.KindNumber,
			Destination: model.DestCommand, Min: 0, Max: 3, Step: 1,
			EnumLabels: map[float64]string{0: "Off", 1: "Low", 2: "Medium", 3: "High"},
		},
		model.ControlDopplerMode: {
			ID: model.ControlDopplerMode, Name: "dopplerMode", Kind: model.KindNumber,
			Destination: model.DestReadOnly, ReadOnly: true, Min: 0, Max: 2, Step: 1,
			EnumLabels: map[float64]string{0: "Off", 1: "Both", 2: "Approaching"},
		},
	}

	if targetsEnabled {
		defs[model.ControlTargetTrails] = model.ControlDefinition{
			ID: model.ControlTargetTrails, Name: "targetTrails", Kind: model.KindNumber,
			Destination: model.DestTrail, Min: 0, Max: 1, Step: 1,
		}
		defs[model.ControlTrailsMotion] = model.ControlDefinition{
			ID: model.ControlTrailsMotion, Name: "trailsMotion", Kind: model.KindNumber,
			Destination: model.DestTrail, Min: 0, Max: 1, Step: 1,
		}
		defs[model.ControlClearTrails] = model.ControlDefinition{
			ID: model.ControlClearTrails, Name: "clearTrails", Kind: model.KindButton,
			Destination: model.DestTrail,
		}
		defs[model.ControlClearTargets] = model.ControlDefinition{
			ID: model.ControlClearTargets, Name: "clearTargets", Kind: model.KindButton,
			Destination: model.DestTarget,
		}
	}
	return defs
}

// idByName supports V3 dialect decoding (name -> ControlID).
func idByName(defs map[model.ControlID]model.ControlDefinition, name string) (model.ControlID, bool) {
	for id, d := range defs {
		if d.Name == name {
			return id, true
		}
	}
	return 0, false
}
