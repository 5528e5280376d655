package datastructure

import "math"

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

func (b *BoundingBox) GetMinLat() float64 {
	return b.minLat
}

func (b *BoundingBox) GetMinLon() float64 {
	return b.minLon
}

func (b *BoundingBox) GetMaxLat() float64 {
	return b.maxLat
}

func (b *BoundingBox) GetMaxLon() float64 {
	return b.maxLon
}

// MaxDistanceFrom. largest planar distance from (lat, lon) to any corner of the box, i.e. to any point inside it.
func (b *BoundingBox) MaxDistanceFrom(lat, lon float64) float64 {
	dLat := math.Max(math.Abs(lat-b.minLat), math.Abs(lat-b.maxLat))
	dLon := math.Max(math.Abs(lon-b.minLon), math.Abs(lon-b.maxLon))
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
