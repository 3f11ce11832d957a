package markerboard

import "github.com/hajimehoshi/ebiten/v2"

// PointerTracker turns per-frame button and cursor polling into
// PointerDown/PointerMove/PointerUp calls. The left mouse button and the
// first active touch both drive it.
type PointerTracker struct {
	down         bool
	lastX, lastY float64

	touchIDs    []ebiten.TouchID
	injectQueue []syntheticPointerEvent
}

// Update reads one frame of input and forwards transitions to h. A queued
// synthetic event replaces real input for the frame it is consumed in.
func (t *PointerTracker) Update(h PointerHandler) {
	if t.processInjectedInput(h) {
		return
	}

	x, y, pressed := t.readPointer()
	t.process(h, x, y, pressed)
}

// readPointer samples the mouse, or the first touch when one is active.
func (t *PointerTracker) readPointer() (float64, float64, bool) {
	t.touchIDs = ebiten.AppendTouchIDs(t.touchIDs[:0])
	if len(t.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(t.touchIDs[0])
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// process feeds one sample through the press/move/release state machine.
// A release at a new position first delivers the final move.
func (t *PointerTracker) process(h PointerHandler, x, y float64, pressed bool) {
	moved := x != t.lastX || y != t.lastY
	p := Vec2{x, y}

	switch {
	case pressed && !t.down:
		t.down = true
		h.PointerDown(p)
	case pressed && t.down:
		if moved {
			h.PointerMove(p)
		}
	case !pressed && t.down:
		if moved {
			h.PointerMove(p)
		}
		t.down = false
		h.PointerUp()
	}

	t.lastX, t.lastY = x, y
}

// Down reports whether a gesture is in progress.
func (t *PointerTracker) Down() bool {
	return t.down
}
