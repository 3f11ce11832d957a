package markerboard

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EditorConfig sizes and labels the editor window.
type EditorConfig struct {
	Width, Height int
	Title         string
	Fallback      RGB // fill when no background image is loaded
	ScreenshotDir string
}

// Editor is the ebiten.Game hosting a Session: it polls input, ticks
// interpolation and paints the current snapshot every frame.
type Editor struct {
	session  *Session
	controls *FormControls
	pointer  PointerTracker
	renderer *Renderer
	script   *Script

	title         string
	width, height int
	fallback      RGB

	bgGen   int
	bgImage *ebiten.Image

	hud      *ebiten.Image
	showHUD  bool
	runeBuf  []rune
	quitDone bool

	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewEditor returns an editor for session. controls must be the same
// FormControls the session reads.
func NewEditor(session *Session, controls *FormControls, cfg EditorConfig) *Editor {
	dir := cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	return &Editor{
		session:       session,
		controls:      controls,
		renderer:      NewRenderer(),
		title:         cfg.Title,
		width:         cfg.Width,
		height:        cfg.Height,
		fallback:      cfg.Fallback,
		showHUD:       true,
		ScreenshotDir: dir,
	}
}

// SetScript attaches an input script, stepped once per frame before real
// input is read. When quitWhenDone is set the game ends after the script.
func (e *Editor) SetScript(s *Script, quitWhenDone bool) {
	e.script = s
	e.quitDone = quitWhenDone
}

// Run opens the window and blocks until it is closed or a script with
// quitWhenDone finishes.
func (e *Editor) Run() error {
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowSize(e.width, e.height)
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (e *Editor) Update() error {
	if e.script != nil {
		e.script.step(e)
		if e.quitDone && e.script.Done() && e.pointer.Pending() == 0 && len(e.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	e.handleKeys()
	e.pointer.Update(e.session)
	e.session.Tick()
	e.syncBackground()
	return nil
}

// Draw implements ebiten.Game.
func (e *Editor) Draw(screen *ebiten.Image) {
	frame := BuildFrame(e.session.Current(), e.bgImage != nil, e.fallback)
	e.renderer.Draw(screen, frame, e.bgImage)

	if len(e.screenshotQueue) > 0 {
		e.flushScreenshots(screen)
	}

	if e.showHUD {
		if e.hud == nil {
			e.hud = ebiten.NewImage(720, 64)
		}
		drawHUD(screen, e.hud, hudText(e.controls, e.session.Interpolating()))
	}
}

// Layout implements ebiten.Game. The canvas is the background's natural size
// once one has loaded.
func (e *Editor) Layout(_, _ int) (int, int) {
	return e.width, e.height
}

// handleKeys edits the controls: F1-F8 pick the mode, F9 toggles the panel,
// Tab switches field, Enter on the background field pushes it.
func (e *Editor) handleKeys() {
	for i, key := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			e.controls.SetMode(Modes[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		e.showHUD = !e.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		e.controls.CycleFocus()
	}
	if repeatingKeyPressed(ebiten.KeyBackspace) {
		e.controls.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && e.controls.Focus() == FieldBackground {
		e.PushBackground(e.controls.BackgroundURL())
	}

	e.runeBuf = ebiten.AppendInputChars(e.runeBuf[:0])
	e.controls.Type(e.runeBuf)
}

// modeKeys selects Modes[i] with modeKeys[i].
var modeKeys = []ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4,
	ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8,
}

// repeatingKeyPressed fires on press and then every few ticks while held.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

// syncBackground uploads a newly loaded background and resizes the canvas
// to it.
func (e *Editor) syncBackground() {
	img, gen := e.session.Background()
	if gen == e.bgGen {
		return
	}
	e.bgGen = gen
	if e.bgImage != nil {
		e.bgImage.Deallocate()
		e.bgImage = nil
	}
	if img == nil {
		return
	}
	e.bgImage = ebiten.NewImageFromImage(img)
	b := img.Bounds()
	e.width, e.height = b.Dx(), b.Dy()
	ebiten.SetWindowSize(e.width, e.height)
}

// PushBackground sends url as the shared background.
func (e *Editor) PushBackground(url string) {
	e.session.PushBackground(url)
}

func (e *Editor) tracker() *PointerTracker { return &e.pointer }

func (e *Editor) formControls() *FormControls { return e.controls }
