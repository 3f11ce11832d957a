package markerboard

import (
	"testing"
)

func TestBuildFrameOrderAndSkips(t *testing.T) {
	st := NewViewState()
	st.Markers.Set("c", Marker{PosX: 10, PosY: 10, Shape: ShapeSquare, Color: "#ffffff", Size: 8})
	st.Markers.Set("bad-shape", Marker{PosX: 0, PosY: 0, Shape: 7, Color: "#ffffff", Size: 8})
	st.Markers.Set("a", Marker{PosX: 20, PosY: 20, Shape: ShapeX, Color: "#000080", Size: 8})
	st.Markers.Set("bad-color", Marker{PosX: 0, PosY: 0, Shape: ShapeCaret, Color: "navy", Size: 8})
	st.Markers.Set("b", Marker{PosX: 30, PosY: 30, Shape: ShapeHexagon, Color: "#808080", Size: 8})

	f := BuildFrame(st, false, RGB{0, 0.5, 0})
	if f.Background {
		t.Error("frame claims a background image")
	}
	if f.Fallback != (RGB{0, 0.5, 0}) {
		t.Errorf("fallback = %+v", f.Fallback)
	}

	want := []string{"c", "a", "b"}
	if len(f.Markers) != len(want) {
		t.Fatalf("frame has %d markers, want %d", len(f.Markers), len(want))
	}
	for i, id := range want {
		if f.Markers[i].ID != id {
			t.Errorf("marker %d = %s, want %s", i, f.Markers[i].ID, id)
		}
	}
}

func TestBuildFrameMarkerCommand(t *testing.T) {
	st := NewViewState()
	m := Marker{PosX: 100, PosY: 50, Shape: ShapeSquare, Color: "#ffff00", Size: 10, Label: "orc"}
	st.Markers.Set("m", m)

	f := BuildFrame(st, true, RGB{})
	if !f.Background {
		t.Error("background flag lost")
	}
	mc := f.Markers[0]
	if mc.Center != (Vec2{100, 50}) {
		t.Errorf("center = %+v", mc.Center)
	}
	assertPoints(t, mc.Points, MarkerPath(m))
	if mc.Fill != (RGB{1, 1, 0}) {
		t.Errorf("fill = %+v", mc.Fill)
	}
	if mc.Ink != inkBlack {
		t.Errorf("ink on yellow = %+v, want black", mc.Ink)
	}
	// Face7x13 advances 7px per glyph, so "orc" is 21px wide.
	if mc.LabelOrigin != (Vec2{89.5, 50}) {
		t.Errorf("label origin = %+v, want (89.5, 50)", mc.LabelOrigin)
	}
}

func TestBuildFrameEmpty(t *testing.T) {
	f := BuildFrame(ViewState{}, false, RGB{})
	if len(f.Markers) != 0 {
		t.Errorf("frame from empty state has %d markers", len(f.Markers))
	}
}

func TestBuildMarkerFan(t *testing.T) {
	pts := ShapeX.Template()
	verts, inds := buildMarkerFan(nil, nil, Vec2{}, pts, RGB{1, 0, 0})
	if len(verts) != len(pts)+1 {
		t.Fatalf("vertices = %d, want %d", len(verts), len(pts)+1)
	}
	if len(inds) != 3*len(pts) {
		t.Fatalf("indices = %d, want %d", len(inds), 3*len(pts))
	}
	for i := 0; i < len(inds); i += 3 {
		if inds[i] != 0 {
			t.Errorf("triangle %d does not start at the centre", i/3)
		}
	}
	// The last triangle closes the outline back to the first point.
	if last := inds[len(inds)-3:]; last[1] != uint16(len(pts)) || last[2] != 1 {
		t.Errorf("closing triangle = %v", last)
	}
	for i, v := range verts {
		if v.ColorR != 1 || v.ColorG != 0 || v.ColorA != 1 || v.SrcX != 0.5 {
			t.Errorf("vertex %d = %+v", i, v)
		}
	}

	verts, inds = buildMarkerFan(verts[:0], inds[:0], Vec2{}, pts[:2], RGB{})
	if len(verts) != 0 || len(inds) != 0 {
		t.Error("degenerate outline produced geometry")
	}
}

func TestRGBColor(t *testing.T) {
	got := RGB{1, 0x88 / 255.0, 0}.color()
	r, g, b, a := got.RGBA()
	if r>>8 != 0xff || g>>8 != 0x88 || b != 0 || a>>8 != 0xff {
		t.Errorf("color = %v", got)
	}
}
