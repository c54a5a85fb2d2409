// Package geo provides great-circle helpers for airport and aircraft positions.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by all distance calculations
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in decimal degrees
type Point struct {
	Lat float64
	Lon float64
}

// IsValid checks that the point lies within the latitude and longitude ranges
func (p Point) IsValid() bool {
	return ValidLatitude(p.Lat) && ValidLongitude(p.Lon)
}

// ValidLatitude reports whether lat is within [-90, 90]. NaN is never valid.
func ValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is within [-180, 180]. NaN is never valid.
func ValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// HaversineDistance returns the great-circle distance between two points in kilometers
func HaversineDistance(p1, p2 Point) float64 {
	lat1 := toRad(p1.Lat)
	lat2 := toRad(p2.Lat)
	dLat := toRad(p2.Lat - p1.Lat)
	dLon := toRad(p2.Lon - p1.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceKm is HaversineDistance over raw coordinates
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineDistance(Point{Lat: lat1, Lon: lon1}, Point{Lat: lat2, Lon: lon2})
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
