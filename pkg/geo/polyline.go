package geo

import "github.com/twpayne/go-polyline"

// PolylineFromCoords. encode path coordinates with the google encoded polyline algorithm (precision 5)
func PolylineFromCoords(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
