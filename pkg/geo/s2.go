package geo

import (
	"github.com/golang/geo/s2"
)

// GreatCircleDistanceMeters. length of the geodesic between two points on the s2 sphere, in meter
func GreatCircleDistanceMeters(latOne, lonOne, latTwo, lonTwo float64) float64 {
	a := s2.LatLngFromDegrees(latOne, lonOne)
	b := s2.LatLngFromDegrees(latTwo, lonTwo)
	return a.Distance(b).Radians() * earthRadiusKM * 1000
}

// PathLengthMeters. sum of great-circle lengths of consecutive coordinates
func PathLengthMeters(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	points := make([]s2.LatLng, len(coords))
	for i, c := range coords {
		points[i] = s2.LatLngFromDegrees(c.Lat, c.Lon)
	}

	length := 0.0
	for i := 1; i < len(points); i++ {
		length += points[i-1].Distance(points[i]).Radians()
	}
	return length * earthRadiusKM * 1000
}
