package markerboard

import (
	"encoding/binary"
	"strconv"

	"github.com/google/uuid"
)

// NewMarkerID returns a random lower-case base-36 token. The server treats
// IDs as opaque strings.
func NewMarkerID() string {
	u := uuid.New()
	return strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
}
