package calibration

// presets holds hand-measured calibrations keyed by exact resolution.
// Values were measured on reference screenshots rather than scaled, so they
// absorb the small per-resolution layout shifts the UI applies.
var presets = map[string]Calibration{
	"1920x1080": Default(),
	"2560x1440": {
		XOffset:     13,
		YOffset:     47,
		IconWidth:   77,
		IconHeight:  77,
		XSpacing:    16,
		YSpacing:    8,
		IconsPerRow: 14,
		NumRows:     2,
	},
	"3840x2160": {
		XOffset:     20,
		YOffset:     70,
		IconWidth:   116,
		IconHeight:  116,
		XSpacing:    24,
		YSpacing:    12,
		IconsPerRow: 14,
		NumRows:     2,
	},
	"1280x720": {
		XOffset:     7,
		YOffset:     23,
		IconWidth:   39,
		IconHeight:  39,
		XSpacing:    8,
		YSpacing:    4,
		IconsPerRow: 14,
		NumRows:     2,
	},
	"1600x900": {
		XOffset:     8,
		YOffset:     29,
		IconWidth:   48,
		IconHeight:  48,
		XSpacing:    10,
		YSpacing:    5,
		IconsPerRow: 14,
		NumRows:     2,
	},
	"1920x1200": {
		XOffset:     10,
		YOffset:     39,
		IconWidth:   58,
		IconHeight:  58,
		XSpacing:    12,
		YSpacing:    6,
		IconsPerRow: 14,
		NumRows:     2,
	},
}

// PresetResolutions returns the resolution keys with exact calibrations.
func PresetResolutions() []string {
	keys := make([]string, 0, len(presets))
	for k := range presets {
		keys = append(keys, k)
	}
	return keys
}
