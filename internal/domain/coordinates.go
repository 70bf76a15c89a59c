package domain

import "math"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lat, lng] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lng} }

const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two coordinates.
// Used for geometric operations only (snapping, partition ordering); route
// legs are always costed over the transit network, never straight-line.
func HaversineMeters(a, b Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
