package markerboard

import (
	"math"
	"testing"
)

func TestShapeTemplates(t *testing.T) {
	wantLens := map[Shape]int{ShapeCaret: 4, ShapeShogi: 5, ShapeSquare: 4, ShapeX: 8, ShapeHexagon: 6}
	for s, n := range wantLens {
		if got := len(s.Template()); got != n {
			t.Errorf("shape %d has %d points, want %d", s, got, n)
		}
	}
	if Shape(-1).Template() != nil || Shape(ShapeCount).Template() != nil {
		t.Error("out-of-range shape returned a template")
	}
}

func TestHexagonTemplateIsRegular(t *testing.T) {
	for i, p := range ShapeHexagon.Template() {
		if r := p.Len(); math.Abs(r-math.Sqrt2) > 1e-12 {
			t.Errorf("vertex %d radius = %v, want sqrt(2)", i, r)
		}
	}
}

func TestCycleShape(t *testing.T) {
	tests := []struct {
		start Shape
		delta int
		want  Shape
	}{
		{ShapeCaret, 1, ShapeShogi},
		{ShapeHexagon, 1, ShapeCaret},
		{ShapeCaret, -1, ShapeHexagon},
		{ShapeSquare, -7, ShapeCaret},
		{ShapeSquare, 10, ShapeSquare},
		{ShapeX, -13, ShapeCaret},
	}
	for _, tt := range tests {
		if got := CycleShape(tt.start, tt.delta); got != tt.want {
			t.Errorf("CycleShape(%d, %d) = %d, want %d", tt.start, tt.delta, got, tt.want)
		}
	}
}

func TestCycleShapeMatchesSumOfDeltas(t *testing.T) {
	deltas := []int{3, -8, 1, 0, -1, 14, -22, 5}
	s := ShapeShogi
	sum := 0
	for _, d := range deltas {
		s = CycleShape(s, d)
		sum += d
		want := ((int(ShapeShogi)+sum)%ShapeCount + ShapeCount) % ShapeCount
		if int(s) != want {
			t.Fatalf("after deltas summing to %d shape = %d, want %d", sum, s, want)
		}
	}
}

func TestMarkerPath(t *testing.T) {
	m := Marker{PosX: 100, PosY: 50, Shape: ShapeSquare, Size: 10}
	pts := MarkerPath(m)
	want := []Vec2{{110, 60}, {110, 40}, {90, 40}, {90, 60}}
	assertPoints(t, pts, want)

	// A quarter turn maps (x, y) to (y, -x) under the canvas rotation.
	m.Shape = ShapeCaret
	m.Rotation = math.Pi / 2
	pts = MarkerPath(m)
	want = []Vec2{{110, 50}, {90, 40}, {95, 50}, {90, 60}}
	assertPoints(t, pts, want)

	m.Shape = 9
	if MarkerPath(m) != nil {
		t.Error("invalid shape produced a path")
	}
}

func TestPathContains(t *testing.T) {
	square := MarkerPath(Marker{PosX: 0, PosY: 0, Shape: ShapeSquare, Size: 10})
	caret := MarkerPath(Marker{PosX: 0, PosY: 0, Shape: ShapeCaret, Size: 10})
	cross := MarkerPath(Marker{PosX: 0, PosY: 0, Shape: ShapeX, Size: 10})

	tests := []struct {
		name string
		pts  []Vec2
		x, y float64
		want bool
	}{
		{"square centre", square, 0, 0, true},
		{"square inside", square, 9, -9, true},
		{"square outside", square, 11, 0, false},
		{"caret centre", caret, 0, 0, true},
		{"caret tip", caret, 0, 9, true},
		{"caret notch", caret, 0, -8, false},
		{"caret wing", caret, 8.5, -9, true},
		{"cross centre", cross, 0, 0, true},
		{"cross arm", cross, 8, 8, true},
		{"cross gap top", cross, 0, 8, false},
		{"cross gap side", cross, -8, 0, false},
		{"degenerate", []Vec2{{0, 0}, {1, 1}}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathContains(tt.pts, tt.x, tt.y); got != tt.want {
				t.Errorf("PathContains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(math.Pi / 2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y+1) > 1e-12 {
		t.Errorf("Rotate = %+v, want (0, -1)", got)
	}
}

func assertPoints(t *testing.T, got, want []Vec2) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
