package markerboard

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultInterpolationWindow is how long a snapshot blend lasts.
const DefaultInterpolationWindow = 500 * time.Millisecond

// interpolation ramps a blend factor from 0 to 1 over a wall-clock window.
// The factor is derived from total elapsed time rather than summed frame
// deltas, so it reaches exactly 1 once the window has passed.
type interpolation struct {
	tween  *gween.Tween
	start  time.Time
	factor float64
	active bool
}

func newInterpolation(window time.Duration) *interpolation {
	if window <= 0 {
		window = DefaultInterpolationWindow
	}
	return &interpolation{
		tween:  gween.New(0, 1, float32(window.Seconds()), ease.Linear),
		factor: 1,
	}
}

// restart begins a new ramp at now with factor 0.
func (i *interpolation) restart(now time.Time) {
	i.tween.Reset()
	i.start = now
	i.factor = 0
	i.active = true
}

// advance moves the ramp to now and returns the factor. Once the window has
// elapsed the factor is 1 and the ramp goes idle.
func (i *interpolation) advance(now time.Time) float64 {
	if !i.active {
		return i.factor
	}
	elapsed := now.Sub(i.start).Seconds()
	v, done := i.tween.Set(float32(elapsed))
	i.factor = float64(v)
	if done {
		i.factor = 1
		i.active = false
	}
	return i.factor
}
