// Package model defines the brand-neutral data types shared by every
// radarcore subsystem: radar identity, the spoke wire shape, legends and
// controls. Brand-specific wire codecs live under internal/radarcore/wire;
// this package holds only what C3/C4/C7 need regardless of brand.
package model

// Brand identifies which vendor protocol family a radar speaks.
type Brand int

const (
	BrandFuruno Brand = iota
	BrandNavico
	BrandRaymarine
)

func (b Brand) String() string {
	switch b {
	case BrandFuruno:
		return "Furuno"
	case BrandNavico:
		return "Navico"
	case BrandRaymarine:
		return "Raymarine"
	default:
		return "Unknown"
	}
}

// ParseBrand parses a case-insensitive brand name, as accepted by the
// CLI's -brand flag. Garmin is recognized by the upstream project this
// gateway descends from but has no wire codec here, so it is rejected.
func ParseBrand(s string) (Brand, bool) {
	switch lower(s) {
	case "furuno":
		return BrandFuruno, true
	case "navico":
		return BrandNavico, true
	case "raymarine":
		return BrandRaymarine, true
	default:
		return 0, false
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// LocatorID distinguishes discovery-protocol variants within a brand,
// e.g. Navico's BR24 beacon versus its Gen3+/HALO beacon, which use
// different spoke header shapes (see wire/navico).
type LocatorID int

const (
	LocatorUnknown LocatorID = iota
	LocatorNavicoBR24
	LocatorNavicoGen3Plus
	LocatorFuruno
	LocatorRaymarine
)
