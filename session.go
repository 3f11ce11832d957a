package markerboard

import (
	"image"
	"sync"
	"time"

	"github.com/phanxgames/markerboard/internal/logging"
)

// SessionOptions configures a Session. Controls and Pusher are required.
type SessionOptions struct {
	Controls            Controls
	Pusher              Pusher
	Loader              BackgroundLoader // nil disables background images
	Metrics             *Metrics
	InterpolationWindow time.Duration // defaults to DefaultInterpolationWindow

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Session owns the editor's view state for the life of a page: the three
// snapshots, the selection and the background image. The poll goroutine and
// the game loop are serialized through its mutex.
//
//   - old is the previous authoritative snapshot (blend source)
//   - next is the latest authoritative snapshot plus local edits (blend target)
//   - current is what is drawn
type Session struct {
	mu sync.Mutex

	old, next, current ViewState
	interp             *interpolation

	selected    string
	grab        Vec2
	initialSize float64

	controls Controls
	pusher   Pusher
	loader   BackgroundLoader
	metrics  *Metrics
	now      func() time.Time

	bgURL   string
	bgImage image.Image
	bgGen   int
}

// NewSession returns a session holding empty version-0 snapshots.
func NewSession(opts SessionOptions) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		old:      NewViewState(),
		next:     NewViewState(),
		current:  NewViewState(),
		interp:   newInterpolation(opts.InterpolationWindow),
		controls: opts.Controls,
		pusher:   opts.Pusher,
		loader:   opts.Loader,
		metrics:  opts.Metrics,
		now:      now,
	}
}

// Version returns the version of the latest authoritative snapshot. The next
// poll asks for anything newer.
func (s *Session) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Version
}

// Apply merges an authoritative snapshot and restarts interpolation:
//
//   - the background field adopts nu's URL unless the user has typed a
//     different one
//   - a changed background starts loading in the background
//   - the selected marker keeps its local copy
//   - the previous next becomes old and nu becomes next
//
// Apply takes ownership of nu and returns a copy of the installed snapshot.
func (s *Session) Apply(nu ViewState) ViewState {
	s.mu.Lock()

	if nu.Markers == nil {
		nu.Markers = NewMarkerMap()
	}

	field := s.controls.BackgroundURL()
	if field == "" || field == s.current.BgImage {
		s.controls.SetBackgroundURL(nu.BgImage)
	}
	load := false
	if s.current.BgImage != nu.BgImage {
		load = s.requestBackground(nu.BgImage)
	}

	if s.selected != "" {
		if m, ok := s.next.Marker(s.selected); ok {
			nu.Markers.Set(s.selected, m)
		}
	}

	s.old = s.next
	s.next = nu
	now := s.now()
	s.interp.restart(now)
	s.tickLocked(now)
	out := s.next.Clone()
	s.mu.Unlock()

	if load {
		logging.Debug().Str("url", nu.BgImage).Msg("loading background")
		s.loader.Load(nu.BgImage, s.backgroundLoaded)
	}
	return out
}

// Tick advances interpolation and rebuilds the drawn snapshot. It does
// nothing once the blend has finished.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.interp.active {
		return
	}
	s.tickLocked(s.now())
}

func (s *Session) tickLocked(now time.Time) {
	t := s.interp.advance(now)
	s.current = Blend(s.old, s.next, t, s.selected)
	s.metrics.interpolation(t)
}

// Interpolating reports whether a blend is in progress.
func (s *Session) Interpolating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.active
}

// Factor returns the current blend factor.
func (s *Session) Factor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interp.factor
}

// Current returns a copy of the drawn snapshot.
func (s *Session) Current() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Next returns a copy of the latest authoritative snapshot with local edits.
func (s *Session) Next() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Clone()
}

// Selected returns the ID of the marker under manipulation, or "".
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Background returns the loaded background image, or nil, and a generation
// number that changes whenever the image does.
func (s *Session) Background() (image.Image, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bgImage, s.bgGen
}

// requestBackground must be called with mu held. It reports whether url
// should be handed to the loader. Only the most recently requested URL may
// replace the displayed image.
func (s *Session) requestBackground(url string) bool {
	s.bgURL = url
	if url == "" {
		s.bgImage = nil
		s.bgGen++
		return false
	}
	return s.loader != nil
}

func (s *Session) backgroundLoaded(url string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img == nil || url != s.bgURL {
		return
	}
	s.bgImage = img
	s.bgGen++
}

// PushBackground sends a background change for everyone on the page. The
// image itself changes when the server echoes the new URL back.
func (s *Session) PushBackground(url string) {
	s.pusher.Push(NewBackgroundUpdate(url))
}
