package markerboard

import (
	"math"
	"strings"
)

// Vec2 is a 2D vector in canvas pixel space. The origin is the top-left
// corner with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate turns v by d radians using the canvas convention
// (cos d*x + sin d*y, cos d*y - sin d*x).
func (v Vec2) Rotate(d float64) Vec2 {
	sin, cos := math.Sincos(d)
	return Vec2{cos*v.X + sin*v.Y, cos*v.Y - sin*v.X}
}

// Mode selects what a pointer gesture does to the marker under it.
type Mode uint8

const (
	ModeMove       Mode = iota // drag to move and turn
	ModeClone                  // copy the hit marker, then drag the copy
	ModeLabel                  // stamp the label field onto the hit marker
	ModeResize                 // drag away from or toward the centre
	ModeDelete                 // request removal
	ModeHue                    // x drags hue, y drags value
	ModeSaturation             // x drags saturation, y drags value
	ModeShape                  // x drags through the shape table
)

var modeNames = [...]string{
	ModeMove:       "MOVE",
	ModeClone:      "CLONE",
	ModeLabel:      "LABEL",
	ModeResize:     "RESIZE",
	ModeDelete:     "DELETE",
	ModeHue:        "HUE",
	ModeSaturation: "SATURATION",
	ModeShape:      "SHAPE",
}

// Modes lists every mode in selector order.
var Modes = []Mode{ModeMove, ModeClone, ModeLabel, ModeResize, ModeDelete, ModeHue, ModeSaturation, ModeShape}

// String returns the upper-case mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "MOVE"
}

// ParseMode maps a mode name to a Mode. Unknown names select ModeMove.
func ParseMode(s string) Mode {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i)
		}
	}
	return ModeMove
}

// Marker defaults and limits.
const (
	DefaultMarkerSize = 16.0
	MinMarkerSize     = 5.0
	MaxMarkerSize     = 256.0
)

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
