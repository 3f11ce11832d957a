package markerboard

import "math"

// Shape indexes the template table.
type Shape int

const (
	ShapeCaret   Shape = iota // arrowhead pointing along +Y
	ShapeShogi                // shogi piece outline
	ShapeSquare               // axis-aligned square
	ShapeX                    // eight-point cross
	ShapeHexagon              // regular hexagon
)

// ShapeCount is the number of templates.
const ShapeCount = 5

// shapeTemplates are unit-space outlines. Every template is star-shaped
// around the origin, which the fill triangulation relies on.
var shapeTemplates = [ShapeCount][]Vec2{
	ShapeCaret:   {{0, 1}, {1, -1}, {0, -0.5}, {-1, -1}},
	ShapeShogi:   {{0, 1}, {0.8, 0.8}, {1, -1}, {-1, -1}, {-0.8, 0.8}},
	ShapeSquare:  {{1, 1}, {1, -1}, {-1, -1}, {-1, 1}},
	ShapeX:       {{1, 1}, {0, 0.5}, {-1, 1}, {-0.5, 0}, {-1, -1}, {0, -0.5}, {1, -1}, {0.5, 0}},
	ShapeHexagon: hexagonTemplate(),
}

func hexagonTemplate() []Vec2 {
	pts := make([]Vec2, 6)
	corner := Vec2{1, 1}
	for k := range pts {
		pts[k] = corner.Rotate(float64(k) * math.Pi / 3)
	}
	return pts
}

// Valid reports whether s indexes the template table.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// Template returns the unit outline for s, or nil when s is out of range.
func (s Shape) Template() []Vec2 {
	if !s.Valid() {
		return nil
	}
	return shapeTemplates[s]
}

// CycleShape moves s by delta steps through the table, wrapping both ways.
func CycleShape(s Shape, delta int) Shape {
	n := (int(s) + delta) % ShapeCount
	if n < 0 {
		n += ShapeCount
	}
	return Shape(n)
}

// MarkerPath returns m's outline in canvas space: each template vertex is
// scaled by Size, turned by Rotation and moved to the marker position.
// An invalid shape yields nil.
func MarkerPath(m Marker) []Vec2 {
	tpl := m.Shape.Template()
	if tpl == nil {
		return nil
	}
	center := Vec2{m.PosX, m.PosY}
	pts := make([]Vec2, len(tpl))
	for i, p := range tpl {
		pts[i] = p.Scale(m.Size).Rotate(m.Rotation).Add(center)
	}
	return pts
}

// PathContains reports whether (x, y) is inside the closed path under the
// non-zero winding rule. Concave outlines (caret, X) hit-test correctly.
func PathContains(points []Vec2, x, y float64) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	winding := 0
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		side := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if a.Y <= y {
			if b.Y > y && side > 0 {
				winding++
			}
		} else if b.Y <= y && side < 0 {
			winding--
		}
	}
	return winding != 0
}
