package geo

import (
	"math"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func (c Coordinate) IsValid() bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lon) && !math.IsInf(c.Lat, 0) && !math.IsInf(c.Lon, 0)
}

const (
	earthRadiusKM = 6371.0
)

// CalculateEuclideanDistance. planar distance in coordinate units (degrees), sqrt(dlat^2 + dlon^2).
// no projection on purpose: snapping and the A* heuristic work on raw lat/lon.
func CalculateEuclideanDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	dLat := latOne - latTwo
	dLon := longOne - longTwo
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
