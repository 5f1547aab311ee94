package entity

import "time"

// GeoPoint point GeoJSON. Coordinates est toujours [lng, lat] — l'ordre GeoJSON,
// longitude d'abord.
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint construit le point GeoJSON à partir de lat/lng.
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Site représente un lieu physique de stockage (entrepôt, dépôt) appartenant à un utilisateur.
// Invariant : Location.Coordinates == [Lng, Lat], recalculé à chaque création et mise à jour.
type Site struct {
	ID        string
	Nom       string
	Adresse   string
	Lat       float64 // [-90, 90]
	Lng       float64 // [-180, 180]
	Location  GeoPoint
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SyncLocation recalcule le point GeoJSON depuis Lat/Lng.
func (s *Site) SyncLocation() {
	s.Location = NewGeoPoint(s.Lat, s.Lng)
}

// ValidCoordinates vérifie les bornes de latitude et longitude.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
