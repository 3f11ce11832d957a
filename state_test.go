package markerboard

import (
	"errors"
	"testing"
)

const sampleState = `{
	"version": 7,
	"bgimage": "http://maps.example/cave.png",
	"characters": {},
	"markers": {
		"zz": {"posx": 10, "posy": 20, "shape": 2, "color": "#ff0000", "size": 16, "rotation": 0.5, "label": "orc"},
		"aa": {"posx": 30.5, "posy": 40, "shape": 0, "color": "#00ff00", "size": 300, "rotation": 0, "label": ""},
		"mm": {"posx": 1, "posy": 2, "shape": 4, "color": "#0000ff", "size": 2}
	}
}`

func TestDecodeViewStateKeepsInsertionOrder(t *testing.T) {
	st, err := DecodeViewState([]byte(sampleState))
	if err != nil {
		t.Fatalf("DecodeViewState: %v", err)
	}
	if st.Version != 7 || st.BgImage != "http://maps.example/cave.png" {
		t.Errorf("header = (%d, %q)", st.Version, st.BgImage)
	}

	var ids []string
	for p := st.Markers.Oldest(); p != nil; p = p.Next() {
		ids = append(ids, p.Key)
	}
	want := []string{"zz", "aa", "mm"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}

	zz, _ := st.Marker("zz")
	if zz != (Marker{PosX: 10, PosY: 20, Shape: ShapeSquare, Color: "#ff0000", Label: "orc", Rotation: 0.5, Size: 16}) {
		t.Errorf("zz = %+v", zz)
	}
	aa, _ := st.Marker("aa")
	if aa.Size != MaxMarkerSize {
		t.Errorf("aa size = %v, want clamp to %v", aa.Size, MaxMarkerSize)
	}
	mm, _ := st.Marker("mm")
	if mm.Size != MinMarkerSize {
		t.Errorf("mm size = %v, want clamp to %v", mm.Size, MinMarkerSize)
	}
}

func TestDecodeViewStateClampsNonPositiveSize(t *testing.T) {
	doc := `{"version": 2, "bgimage": "", "markers": {
		"zero": {"posx": 1, "posy": 1, "shape": 0, "color": "#123456", "size": 0},
		"neg":  {"posx": 2, "posy": 2, "shape": 1, "color": "#123456", "size": -40}
	}}`
	st, err := DecodeViewState([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeViewState: %v", err)
	}
	for _, id := range []string{"zero", "neg"} {
		m, ok := st.Marker(id)
		if !ok {
			t.Errorf("%s dropped", id)
			continue
		}
		if m.Size != MinMarkerSize {
			t.Errorf("%s size = %v, want %v", id, m.Size, MinMarkerSize)
		}
	}
}

func TestDecodeViewStateDropsMalformedMarkers(t *testing.T) {
	doc := `{"version": 3, "bgimage": "", "markers": {
		"ok":      {"posx": 1, "posy": 1, "shape": 1, "color": "#123456", "size": 16},
		"noshape": {"posx": 1, "posy": 1, "color": "#123456", "size": 16},
		"badshape":{"posx": 1, "posy": 1, "shape": 5, "color": "#123456", "size": 16},
		"badcolor":{"posx": 1, "posy": 1, "shape": 1, "color": "red", "size": 16},
		"nopos":   {"posy": 1, "shape": 1, "color": "#123456", "size": 16},
		"notobj":  42
	}}`
	st, err := DecodeViewState([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeViewState: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("kept %d markers, want 1", st.Len())
	}
	if _, ok := st.Marker("ok"); !ok {
		t.Error("valid marker dropped")
	}
}

func TestDecodeViewStateEmptyMarkers(t *testing.T) {
	for _, doc := range []string{
		`{"version": 1, "bgimage": ""}`,
		`{"version": 1, "bgimage": "", "markers": null}`,
		`{"version": 1, "bgimage": "", "markers": {}}`,
	} {
		st, err := DecodeViewState([]byte(doc))
		if err != nil {
			t.Fatalf("DecodeViewState(%s): %v", doc, err)
		}
		if st.Markers == nil || st.Len() != 0 {
			t.Errorf("DecodeViewState(%s) markers = %v", doc, st.Markers)
		}
	}
}

func TestDecodeViewStateRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `<html>`},
		{"null", `null`},
		{"no version", `{"bgimage": "", "markers": {}}`},
		{"negative version", `{"version": -1, "markers": {}}`},
		{"markers array", `{"version": 1, "markers": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeViewState([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidState) {
				t.Fatalf("error = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	st := NewViewState()
	st.Markers.Set("a", Marker{PosX: 1, Color: "#000000", Size: 16})

	cp := st.Clone()
	cp.Markers.Set("a", Marker{PosX: 99})
	cp.Markers.Set("b", Marker{})

	a, _ := st.Marker("a")
	if a.PosX != 1 || st.Len() != 1 {
		t.Errorf("original changed through clone: %+v, len %d", a, st.Len())
	}
}

func TestBlend(t *testing.T) {
	old := NewViewState()
	old.Markers.Set("both", Marker{PosX: 0, PosY: 10, Rotation: 0, Size: 10, Color: "#000000", Label: "old"})
	old.Markers.Set("held", Marker{PosX: 0, PosY: 0, Size: 10})
	old.Markers.Set("gone", Marker{PosX: 5})

	next := NewViewState()
	next.Version = 2
	next.Markers.Set("both", Marker{PosX: 100, PosY: 20, Rotation: 1, Size: 30, Color: "#ffffff", Label: "new"})
	next.Markers.Set("fresh", Marker{PosX: 7, PosY: 8, Size: 16})
	next.Markers.Set("held", Marker{PosX: 50, PosY: 50, Size: 20})

	got := Blend(old, next, 0.25, "held")

	both, _ := got.Marker("both")
	want := Marker{PosX: 25, PosY: 12.5, Rotation: 0.25, Size: 15, Color: "#ffffff", Label: "new"}
	if both != want {
		t.Errorf("both = %+v, want %+v", both, want)
	}
	if fresh, _ := got.Marker("fresh"); fresh.PosX != 7 || fresh.PosY != 8 {
		t.Errorf("fresh marker blended: %+v", fresh)
	}
	if held, _ := got.Marker("held"); held.PosX != 50 || held.Size != 20 {
		t.Errorf("held marker blended: %+v", held)
	}
	if _, ok := got.Marker("gone"); ok {
		t.Error("marker absent from next was drawn")
	}
	if got.Version != 2 {
		t.Errorf("version = %d, want 2", got.Version)
	}

	end := Blend(old, next, 1, "")
	endBoth, _ := end.Marker("both")
	nextBoth, _ := next.Marker("both")
	if endBoth != nextBoth {
		t.Errorf("t=1 gave %+v, want exactly %+v", endBoth, nextBoth)
	}
}
