package markerboard

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/phanxgames/markerboard/internal/logging"
)

// ErrInvalidState is returned when a view-state document cannot be used.
var ErrInvalidState = errors.New("invalid view state")

// Marker is one map icon. Markers are values; copying one never aliases.
type Marker struct {
	PosX     float64 `json:"posx"`
	PosY     float64 `json:"posy"`
	Shape    Shape   `json:"shape"`
	Color    string  `json:"color"`
	Label    string  `json:"label"`
	Rotation float64 `json:"rotation"`
	Size     float64 `json:"size"`
}

// Pos returns the marker centre.
func (m Marker) Pos() Vec2 { return Vec2{m.PosX, m.PosY} }

// MarkerMap holds markers in insertion order, which is both paint order and
// hit-test order.
type MarkerMap = orderedmap.OrderedMap[string, Marker]

// NewMarkerMap returns an empty MarkerMap.
func NewMarkerMap() *MarkerMap {
	return orderedmap.New[string, Marker]()
}

// ViewState is one snapshot of the shared document.
type ViewState struct {
	Version int64
	BgImage string
	Markers *MarkerMap
}

// NewViewState returns an empty snapshot at version 0.
func NewViewState() ViewState {
	return ViewState{Markers: NewMarkerMap()}
}

// Clone returns a deep copy of s.
func (s ViewState) Clone() ViewState {
	out := ViewState{Version: s.Version, BgImage: s.BgImage, Markers: NewMarkerMap()}
	if s.Markers == nil {
		return out
	}
	for p := s.Markers.Oldest(); p != nil; p = p.Next() {
		out.Markers.Set(p.Key, p.Value)
	}
	return out
}

// Marker looks up a marker by ID.
func (s ViewState) Marker(id string) (Marker, bool) {
	if s.Markers == nil {
		return Marker{}, false
	}
	return s.Markers.Get(id)
}

// Len returns the number of markers.
func (s ViewState) Len() int {
	if s.Markers == nil {
		return 0
	}
	return s.Markers.Len()
}

// Blend returns next with the position, rotation and size of every marker
// also present in old moved t of the way from old to next. The marker named
// skip is copied from next unchanged.
func Blend(old, next ViewState, t float64, skip string) ViewState {
	out := next.Clone()
	if old.Markers == nil {
		return out
	}
	for p := out.Markers.Oldest(); p != nil; p = p.Next() {
		if p.Key == skip {
			continue
		}
		prev, ok := old.Markers.Get(p.Key)
		if !ok {
			continue
		}
		m := p.Value
		m.PosX = lerp(prev.PosX, m.PosX, t)
		m.PosY = lerp(prev.PosY, m.PosY, t)
		m.Rotation = lerp(prev.Rotation, m.Rotation, t)
		m.Size = lerp(prev.Size, m.Size, t)
		p.Value = m
	}
	return out
}

func lerp(from, to, t float64) float64 {
	return to*t + from*(1-t)
}

// wireState is the listen response body. Unknown fields are ignored.
type wireState struct {
	Version *int64          `json:"version" validate:"required,gte=0"`
	BgImage string          `json:"bgimage"`
	Markers json.RawMessage `json:"markers"`
}

// wireMarker requires the fields a marker cannot be drawn without.
type wireMarker struct {
	PosX     *float64 `json:"posx" validate:"required"`
	PosY     *float64 `json:"posy" validate:"required"`
	Shape    *int     `json:"shape" validate:"required,shapeindex"`
	Color    string   `json:"color" validate:"required,rgbhex"`
	Label    string   `json:"label"`
	Rotation float64  `json:"rotation"`
	Size     *float64 `json:"size" validate:"required"`
}

var (
	rgbHexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

	wireValidate     *validator.Validate
	wireValidateOnce sync.Once
)

func wireValidator() *validator.Validate {
	wireValidateOnce.Do(func() {
		wireValidate = validator.New(validator.WithRequiredStructEnabled())
		_ = wireValidate.RegisterValidation("shapeindex", func(fl validator.FieldLevel) bool {
			return Shape(fl.Field().Int()).Valid()
		})
		_ = wireValidate.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
			return rgbHexPattern.MatchString(fl.Field().String())
		})
	})
	return wireValidate
}

// DecodeViewState parses a listen response. A document without a usable
// version is rejected; individual markers that fail validation are dropped
// and logged so one bad entry cannot blank the board. Sizes are clamped into
// [MinMarkerSize, MaxMarkerSize].
func DecodeViewState(data []byte) (ViewState, error) {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return ViewState{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if err := wireValidator().Struct(&w); err != nil {
		return ViewState{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	st := ViewState{Version: *w.Version, BgImage: w.BgImage, Markers: NewMarkerMap()}

	raw := bytes.TrimSpace(w.Markers)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return st, nil
	}
	entries := orderedmap.New[string, json.RawMessage]()
	if err := entries.UnmarshalJSON(raw); err != nil {
		return ViewState{}, fmt.Errorf("%w: markers: %w", ErrInvalidState, err)
	}

	for p := entries.Oldest(); p != nil; p = p.Next() {
		m, err := decodeMarker(p.Value)
		if err != nil {
			logging.Warn().Err(err).Str("marker", p.Key).Int64("version", st.Version).Msg("dropping malformed marker")
			continue
		}
		st.Markers.Set(p.Key, m)
	}
	return st, nil
}

func decodeMarker(data []byte) (Marker, error) {
	var w wireMarker
	if err := json.Unmarshal(data, &w); err != nil {
		return Marker{}, err
	}
	if err := wireValidator().Struct(&w); err != nil {
		return Marker{}, err
	}
	return Marker{
		PosX:     *w.PosX,
		PosY:     *w.PosY,
		Shape:    Shape(*w.Shape),
		Color:    w.Color,
		Label:    w.Label,
		Rotation: w.Rotation,
		Size:     clamp(*w.Size, MinMarkerSize, MaxMarkerSize),
	}, nil
}
