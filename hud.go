package markerboard

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudText renders the control panel: the mode selector and both text
// fields, with a caret on the focused one.
func hudText(c *FormControls, interpolating bool) string {
	mode := c.Mode()
	var modes string
	for i, m := range Modes {
		mark := " "
		if m == mode {
			mark = "*"
		}
		modes += fmt.Sprintf("%sF%d %s ", mark, i+1, m)
	}

	labelCaret, bgCaret := "", ""
	if c.Focus() == FieldLabel {
		labelCaret = "_"
	} else {
		bgCaret = "_"
	}

	sync := "idle"
	if interpolating {
		sync = "blending"
	}
	return fmt.Sprintf("%s\nlabel: %s%s\nbackground: %s%s\n[tab] switch field  [enter] push background  sync: %s",
		modes, c.LabelText(), labelCaret, c.BackgroundURL(), bgCaret, sync)
}

// drawHUD prints the panel in the top-left corner over a translucent strip.
func drawHUD(screen *ebiten.Image, panel *ebiten.Image, s string) {
	panel.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(panel, s)
	screen.DrawImage(panel, nil)
}
