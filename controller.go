package markerboard

import (
	"math"
)

// PointerHandler receives pointer gestures in canvas coordinates.
type PointerHandler interface {
	PointerDown(p Vec2)
	PointerMove(p Vec2)
	PointerUp()
}

// PointerDown starts a gesture at p. The first marker in insertion order
// whose outline contains p is hit; the mode read from Controls decides what
// happens to it. A miss in any mode creates a new marker at p.
func (s *Session) PointerDown(p Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode := s.controls.Mode()
	s.grab = p

	id, m, hit := s.hitTest(p)
	if !hit {
		s.selected = NewMarkerID()
		s.setMarker(s.selected, Marker{
			PosX:  p.X,
			PosY:  p.Y,
			Shape: ShapeCaret,
			Color: RandomColor(),
			Size:  DefaultMarkerSize,
		})
		return
	}

	s.selected = id
	switch mode {
	case ModeClone:
		s.selected = NewMarkerID()
		s.setMarker(s.selected, m)
	case ModeLabel:
		m.Label = s.controls.LabelText()
		s.setMarker(id, m)
	case ModeResize:
		s.initialSize = m.Size
	case ModeDelete:
		s.pusher.Push(NewDeleteUpdate(id))
		s.selected = ""
	}
}

// PointerMove applies one drag step to the selected marker.
func (s *Session) PointerMove(p Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == "" {
		return
	}
	m, ok := s.next.Marker(s.selected)
	if !ok {
		return
	}

	updateGrab := true
	switch s.controls.Mode() {
	case ModeMove, ModeClone:
		m = dragMarker(m, s.grab, p)
	case ModeResize:
		m.Size = resizeMarker(m, s.grab, p, s.initialSize)
		updateGrab = false
	case ModeHue:
		m.Color = recolor(m.Color, func(h HSV) HSV {
			return h.ShiftHue((p.X - s.grab.X) / 30).ShiftValue(-(p.Y - s.grab.Y) / 255)
		})
	case ModeSaturation:
		m.Color = recolor(m.Color, func(h HSV) HSV {
			return h.ShiftSaturation((p.X - s.grab.X) / 255).ShiftValue(-(p.Y - s.grab.Y) / 255)
		})
	case ModeShape:
		d := shapeSteps(p.X - s.grab.X)
		if d == 0 {
			updateGrab = false
		}
		m.Shape = CycleShape(m.Shape, d)
	}

	s.setMarker(s.selected, m)
	if updateGrab {
		s.grab = p
	}
}

// PointerUp ends the gesture and pushes the selected marker as an upsert.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == "" {
		return
	}
	if m, ok := s.next.Marker(s.selected); ok {
		s.pusher.Push(NewMarkerUpdate(s.selected, m))
	}
	s.selected = ""
}

// hitTest must be called with mu held.
func (s *Session) hitTest(p Vec2) (string, Marker, bool) {
	for pair := s.current.Markers.Oldest(); pair != nil; pair = pair.Next() {
		if PathContains(MarkerPath(pair.Value), p.X, p.Y) {
			return pair.Key, pair.Value, true
		}
	}
	return "", Marker{}, false
}

// setMarker writes m into both next and current. Must be called with mu held.
func (s *Session) setMarker(id string, m Marker) {
	s.next.Markers.Set(id, m)
	s.current.Markers.Set(id, m)
}

// dragMarker keeps the marker at its grab distance from the pointer while
// turning it by the signed angle between the old and new offsets. A pointer
// sitting exactly on the centre leaves the marker alone.
func dragMarker(m Marker, grab, p Vec2) Marker {
	pos := m.Pos()
	prev := pos.Sub(grab)
	dir := p.Sub(pos)
	n := dir.Len()
	if n == 0 {
		return m
	}
	dir = dir.Scale(1 / n)
	dist := prev.Len()

	np := p.Sub(dir.Scale(dist))
	m.PosX, m.PosY = np.X, np.Y
	if dist != 0 {
		m.Rotation += math.Atan2(prev.Cross(dir), -prev.Dot(dir))
	}
	return m
}

// resizeMarker scales base by the mean of the x and y ratios between the
// pointer's offset and the grab offset. Non-finite results keep the size.
func resizeMarker(m Marker, grab, p Vec2, base float64) float64 {
	pos := m.Pos()
	prev := pos.Sub(grab)
	cur := pos.Sub(p)
	scale := (cur.X/prev.X + cur.Y/prev.Y) / 2
	size := base * scale
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return m.Size
	}
	return clamp(size, MinMarkerSize, MaxMarkerSize)
}

// shapeSteps converts a horizontal drag to shape steps: negative deltas
// round up, positive deltas round down.
func shapeSteps(dx float64) int {
	d := dx / 6
	if d < 0 {
		return int(math.Ceil(d))
	}
	return int(math.Floor(d))
}

// recolor applies fn in HSV space. An unparsable color is left unchanged.
func recolor(hex string, fn func(HSV) HSV) string {
	c, err := ParseHex(hex)
	if err != nil {
		return hex
	}
	return fn(c.ToHSV()).ToRGB().Hex()
}
