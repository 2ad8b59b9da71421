package model

// PixelKind tags the semantic meaning of one Legend entry.
type PixelKind int

const (
	PixelNormal PixelKind = iota
	PixelTargetBorder
	PixelDopplerApproaching
	PixelDopplerReceding
	PixelHistory
)

// Color is a non-premultiplied RGBA color, as used throughout the legend
// and exported to clients as a "#rrggbbaa" hex string.
type Color struct {
	R, G, B, A uint8
}

func (c Color) Hex() string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 9)
	buf[0] = '#'
	put := func(i int, v uint8) {
		buf[1+i*2] = hex[v>>4]
		buf[2+i*2] = hex[v&0xf]
	}
	put(0, c.R)
	put(1, c.G)
	put(2, c.B)
	put(3, c.A)
	return string(buf)
}

// Lookup is one entry in a Legend: a semantic kind paired with the color
// a client should paint for that pixel index.
type Lookup struct {
	Kind  PixelKind
	Color Color
}

// Legend maps normalized "pixel" values (indices into Pixels) to a
// semantic kind and display color. BuildLegend constructs one; nothing in
// this module calls it, so RadarInfo.Legend is neither built nor rebuilt
// when PixelValues or Doppler capability changes.
type Legend struct {
	Pixels []Lookup

	// Reserved indices into Pixels, -1 when not present for this radar.
	Border             int
	DopplerApproaching int
	DopplerReceding    int
	HistoryStart       int
	StrongReturn       int
}

// blobHistoryColors is the 32-step history-trail gradient, darkest (most
// recent) to lightest, expressed as alpha over a fixed blue-gray base.
var blobHistoryColors = buildHistoryGradient()

func buildHistoryGradient() []Color {
	const steps = 32
	colors := make([]Color, steps)
	for i := 0; i < steps; i++ {
		// density falls linearly from 255 (freshest) to 63 (oldest)
		density := uint8(255 - (255-63)*i/(steps-1))
		colors[i] = Color{R: 0, G: 80, B: 160, A: density}
	}
	return colors
}

// BuildLegend constructs the pixel lookup table for a radar, following the
// original implementation's thirds-based gradient: pixelValues is clamped
// to 221, the first third ramps black to green, the second third green to
// yellow (red rising), and the final third yellow to red (green falling),
// with strongReturn fixed at the 2/3
// point. targets and doppler control which optional trailing entries are
// appended.
func BuildLegend(pixelValues uint8, doppler bool, includeTargets bool) *Legend {
	if pixelValues > 221 {
		pixelValues = 221
	}
	n := int(pixelValues)
	if n < 1 {
		n = 1
	}
	pixels := make([]Lookup, 0, n+8)
	pixels = append(pixels, Lookup{Kind: PixelNormal, Color: Color{0, 0, 0, 0}}) // index 0: no return

	third := n / 3
	if third < 1 {
		third = 1
	}
	for i := 1; i < n; i++ {
		var c Color
		switch {
		case i <= third:
			// black -> green
			g := uint8(255 * i / third)
			c = Color{0, g, 0, 255}
		case i <= 2*third:
			// green -> yellow
			step := i - third
			span := third
			if span < 1 {
				span = 1
			}
			r := uint8(255 * step / span)
			c = Color{r, 255, 0, 255}
		default:
			// yellow -> red
			step := i - 2*third
			span := n - 2*third
			if span < 1 {
				span = 1
			}
			g := uint8(255 - 255*step/span)
			c = Color{255, g, 0, 255}
		}
		pixels = append(pixels, Lookup{Kind: PixelNormal, Color: c})
	}

	legend := &Legend{
		Pixels:             pixels,
		Border:             -1,
		DopplerApproaching: -1,
		DopplerReceding:    -1,
		HistoryStart:       -1,
		StrongReturn:       2 * n / 3,
	}

	if includeTargets {
		legend.Border = len(legend.Pixels)
		legend.Pixels = append(legend.Pixels, Lookup{Kind: PixelTargetBorder, Color: Color{255, 255, 255, 255}})
	}
	if doppler {
		legend.DopplerApproaching = len(legend.Pixels)
		legend.Pixels = append(legend.Pixels, Lookup{Kind: PixelDopplerApproaching, Color: Color{0, 255, 255, 255}})
		legend.DopplerReceding = len(legend.Pixels)
		legend.Pixels = append(legend.Pixels, Lookup{Kind: PixelDopplerReceding, Color: Color{255, 0, 255, 255}})
	}
	if includeTargets {
		legend.HistoryStart = len(legend.Pixels)
		for _, c := range blobHistoryColors {
			legend.Pixels = append(legend.Pixels, Lookup{Kind: PixelHistory, Color: c})
		}
	}
	return legend
}
