package markerboard

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// labelFace draws and measures marker labels.
var labelFace font.Face = basicfont.Face7x13

// MarkerCommand is one marker ready to draw.
type MarkerCommand struct {
	ID     string
	Center Vec2
	Points []Vec2 // closed outline in canvas space
	Fill   RGB
	Ink    RGB // outline and label color
	Label  string
	// LabelOrigin is the left end of the label baseline.
	LabelOrigin Vec2
}

// Frame is the full draw list for one paint: a background (image or fallback
// fill) then markers back to front.
type Frame struct {
	Background bool // draw the loaded image instead of Fallback
	Fallback   RGB
	Markers    []MarkerCommand
}

// BuildFrame converts a snapshot into draw commands in insertion order.
// Markers with an out-of-range shape or unparsable color are skipped.
func BuildFrame(st ViewState, hasBackground bool, fallback RGB) Frame {
	f := Frame{Background: hasBackground, Fallback: fallback}
	if st.Markers == nil {
		return f
	}
	f.Markers = make([]MarkerCommand, 0, st.Markers.Len())
	for p := st.Markers.Oldest(); p != nil; p = p.Next() {
		m := p.Value
		pts := MarkerPath(m)
		if pts == nil {
			continue
		}
		fill, err := ParseHex(m.Color)
		if err != nil {
			continue
		}
		w := float64(font.MeasureString(labelFace, m.Label).Round())
		f.Markers = append(f.Markers, MarkerCommand{
			ID:          p.Key,
			Center:      m.Pos(),
			Points:      pts,
			Fill:        fill,
			Ink:         fill.Ink(),
			Label:       m.Label,
			LabelOrigin: Vec2{m.PosX - w/2, m.PosY},
		})
	}
	return f
}

// Renderer submits Frames to an ebiten image. Vertex and index buffers are
// reused across frames.
type Renderer struct {
	white *ebiten.Image
	face  *text.GoXFace
	verts []ebiten.Vertex
	inds  []uint16
}

// NewRenderer returns a renderer. Textures are created on first Draw.
func NewRenderer() *Renderer {
	return &Renderer{face: text.NewGoXFace(labelFace)}
}

func (r *Renderer) ensureWhitePixel() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}

// Draw paints f onto dst. bg is drawn at the origin when f.Background is set.
func (r *Renderer) Draw(dst *ebiten.Image, f Frame, bg *ebiten.Image) {
	if f.Background && bg != nil {
		dst.Clear()
		dst.DrawImage(bg, nil)
	} else {
		dst.Fill(f.Fallback.color())
	}

	for i := range f.Markers {
		r.drawMarker(dst, &f.Markers[i])
	}
}

func (r *Renderer) drawMarker(dst *ebiten.Image, mc *MarkerCommand) {
	r.verts, r.inds = buildMarkerFan(r.verts[:0], r.inds[:0], mc.Center, mc.Points, mc.Fill)
	dst.DrawTriangles(r.verts, r.inds, r.ensureWhitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})

	ink := mc.Ink.color()
	n := len(mc.Points)
	for i, a := range mc.Points {
		b := mc.Points[(i+1)%n]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, ink, true)
	}

	if mc.Label == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(mc.LabelOrigin.X, mc.LabelOrigin.Y-r.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(ink)
	text.Draw(dst, mc.Label, r.face, op)
}

// buildMarkerFan triangulates an outline as a fan around center. Every shape
// template is star-shaped around its centre, so the fan covers concave
// outlines exactly. N points yield N+1 vertices and 3N indices.
func buildMarkerFan(verts []ebiten.Vertex, inds []uint16, center Vec2, points []Vec2, c RGB) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	vertex := func(p Vec2) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: 1,
		}
	}
	verts = append(verts, vertex(center))
	for _, p := range points {
		verts = append(verts, vertex(p))
	}
	for i := 0; i < n; i++ {
		inds = append(inds, 0, uint16(i+1), uint16((i+1)%n+1))
	}
	return verts, inds
}

func (c RGB) color() color.Color {
	return color.NRGBA{R: uint8(hexByte(c.R)), G: uint8(hexByte(c.G)), B: uint8(hexByte(c.B)), A: 0xff}
}
