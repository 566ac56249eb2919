package geo

import "math"

// EarthRadiusMiles is the mean radius of the earth in statute miles.
const EarthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle distance between two points using
// the Haversine formula.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := toRadians(lat1)
	radLat2 := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// BoundingBox is a latitude/longitude rectangle used to pre-filter candidates
// in the store before precise distance filtering.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBoxAround returns a box that fully contains the circle of
// radiusMiles around the center point. The box is slightly larger than the
// circle; callers apply DistanceMiles to the candidates for the precise cut.
func BoundingBoxAround(lat, lon, radiusMiles float64) BoundingBox {
	latDelta := toDegrees(radiusMiles / EarthRadiusMiles)

	// Longitude degrees shrink with latitude; clamp near the poles where the
	// box degenerates to the full longitude range.
	lonDelta := 180.0
	if cosLat := math.Cos(toRadians(lat)); cosLat > 1e-9 {
		lonDelta = toDegrees(radiusMiles / (EarthRadiusMiles * cosLat))
		if lonDelta > 180.0 {
			lonDelta = 180.0
		}
	}

	return BoundingBox{
		MinLat: math.Max(lat-latDelta, -90),
		MaxLat: math.Min(lat+latDelta, 90),
		MinLon: math.Max(lon-lonDelta, -180),
		MaxLon: math.Min(lon+lonDelta, 180),
	}
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

func toDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}
