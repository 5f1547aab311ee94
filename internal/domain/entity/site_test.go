package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// L'ordre GeoJSON met la longitude en premier : un site à Antananarivo
// (lat -18.8792, lng 47.5079) doit produire [47.5079, -18.8792].
func TestGeoPoint_OrdreLongitudeLatitude(t *testing.T) {
	p := entity.NewGeoPoint(-18.8792, 47.5079)

	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, 47.5079, p.Coordinates[0], "longitude en premier")
	assert.Equal(t, -18.8792, p.Coordinates[1], "latitude en second")
}

func TestGeoPoint_SerialisationJSON(t *testing.T) {
	p := entity.NewGeoPoint(-18.8792, 47.5079)
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[47.5079,-18.8792]}`, string(raw))
}

func TestSite_SyncLocation(t *testing.T) {
	s := entity.Site{Lat: -21.4527, Lng: 47.0857}
	s.SyncLocation()

	assert.Equal(t, [2]float64{47.0857, -21.4527}, s.Location.Coordinates)

	// Une mise à jour des coordonnées doit être suivie d'un resync.
	s.Lat, s.Lng = -12.2787, 49.2917
	s.SyncLocation()
	assert.Equal(t, [2]float64{49.2917, -12.2787}, s.Location.Coordinates)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, entity.ValidCoordinates(-18.8792, 47.5079))
	assert.True(t, entity.ValidCoordinates(90, 180))
	assert.True(t, entity.ValidCoordinates(-90, -180))
	assert.False(t, entity.ValidCoordinates(91, 0))
	assert.False(t, entity.ValidCoordinates(0, 181))
	assert.False(t, entity.ValidCoordinates(-90.01, 0))
}
