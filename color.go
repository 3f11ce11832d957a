package markerboard

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
)

// ErrMalformedColor is returned by ParseHex for anything but #rrggbb.
var ErrMalformedColor = errors.New("malformed color")

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// HSV is a color in the sextant convention: H in [0, 6), S and V in [0, 1].
type HSV struct {
	H, S, V float64
}

var (
	inkBlack = RGB{0, 0, 0}
	inkWhite = RGB{1, 1, 1}
)

// ParseHex parses a #rrggbb string.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}
	var ch [3]float64
	for i := range ch {
		n, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
		}
		ch[i] = float64(n) / 255
	}
	return RGB{ch[0], ch[1], ch[2]}, nil
}

// Hex formats c as #rrggbb. Each channel is floored after scaling to 255.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", hexByte(c.R), hexByte(c.G), hexByte(c.B))
}

func hexByte(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	// Round-trip values like 128/255 land just below the integer.
	return int(clamp(math.Floor(v*255+1e-9), 0, 255))
}

// ToHSV converts c to the sextant HSV form. Grays have hue 0.
func (c RGB) ToHSV() HSV {
	maxc := math.Max(c.R, math.Max(c.G, c.B))
	minc := math.Min(c.R, math.Min(c.G, c.B))
	chroma := maxc - minc

	var h float64
	switch {
	case chroma == 0:
		h = 0
	case maxc == c.R:
		h = math.Mod((c.G-c.B)/chroma+6, 6)
	case maxc == c.G:
		h = (c.B-c.R)/chroma + 2
	default:
		h = (c.R-c.G)/chroma + 4
	}

	var s float64
	if maxc != 0 {
		s = chroma / maxc
	}
	return HSV{H: h, S: s, V: maxc}
}

// ToRGB converts h back to RGB.
func (h HSV) ToRGB() RGB {
	c := h.V * h.S
	m := h.V - c
	x := c*(1-math.Abs(math.Mod(h.H, 2)-1)) + m
	cm := c + m

	switch int(math.Floor(h.H)) {
	case 0:
		return RGB{cm, x, m}
	case 1:
		return RGB{x, cm, m}
	case 2:
		return RGB{m, cm, x}
	case 3:
		return RGB{m, x, cm}
	case 4:
		return RGB{x, m, cm}
	default:
		return RGB{cm, m, x}
	}
}

// ShiftHue advances hue by d sextants, wrapping into [0, 6).
func (h HSV) ShiftHue(d float64) HSV {
	h.H = wrapHue(h.H + d)
	return h
}

// ShiftSaturation adds d to saturation, clamped to [0, 1].
func (h HSV) ShiftSaturation(d float64) HSV {
	h.S = clamp(h.S+d, 0, 1)
	return h
}

// ShiftValue adds d to value, clamped to [0, 1].
func (h HSV) ShiftValue(d float64) HSV {
	h.V = clamp(h.V+d, 0, 1)
	return h
}

func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 6)
	if h < 0 {
		h += 6
	}
	if h >= 6 {
		h = 0
	}
	return h
}

// Ink returns the outline and label color for a fill: black on light fills,
// white on dark ones, split at R+G+B = 1.5.
func (c RGB) Ink() RGB {
	if c.R+c.G+c.B > 1.5 {
		return inkBlack
	}
	return inkWhite
}

// RandomColor returns a random #rrggbb color below #ffffff.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.IntN(0xffffff))
}
