package markerboard

// Update is a mutation request sent to the server. The concrete types
// marshal to the bodies /update accepts.
type Update interface {
	UpdateType() string
}

// Update type names on the wire.
const (
	UpdateMarkerPush = "mpush"
	UpdateMarkerDel  = "mdel"
	UpdateBgImage    = "bgimage"
)

// MarkerUpdate upserts a marker with its full attribute set.
type MarkerUpdate struct {
	Type     string  `json:"type"`
	ID       string  `json:"id"`
	PosX     float64 `json:"posx"`
	PosY     float64 `json:"posy"`
	Shape    Shape   `json:"shape"`
	Color    string  `json:"color"`
	Label    string  `json:"label"`
	Rotation float64 `json:"rotation"`
	Size     float64 `json:"size"`
}

// NewMarkerUpdate builds an mpush for m.
func NewMarkerUpdate(id string, m Marker) MarkerUpdate {
	return MarkerUpdate{
		Type:     UpdateMarkerPush,
		ID:       id,
		PosX:     m.PosX,
		PosY:     m.PosY,
		Shape:    m.Shape,
		Color:    m.Color,
		Label:    m.Label,
		Rotation: m.Rotation,
		Size:     m.Size,
	}
}

func (MarkerUpdate) UpdateType() string { return UpdateMarkerPush }

// DeleteUpdate asks the server to drop a marker.
type DeleteUpdate struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// NewDeleteUpdate builds an mdel for id.
func NewDeleteUpdate(id string) DeleteUpdate {
	return DeleteUpdate{Type: UpdateMarkerDel, ID: id}
}

func (DeleteUpdate) UpdateType() string { return UpdateMarkerDel }

// BackgroundUpdate replaces the shared background image URL.
type BackgroundUpdate struct {
	Type    string `json:"type"`
	BgImage string `json:"bgimage"`
}

// NewBackgroundUpdate builds a bgimage update.
func NewBackgroundUpdate(url string) BackgroundUpdate {
	return BackgroundUpdate{Type: UpdateBgImage, BgImage: url}
}

func (BackgroundUpdate) UpdateType() string { return UpdateBgImage }
