// Package geo holds great-circle helpers for the nearby-issues query.
package geo

import "math"

const EarthRadiusKm = 6371.0

// Distance returns the Haversine great-circle distance in kilometers between two
// points given in decimal degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BoundingBox is a coarse lat/lng window that contains every point within radiusKm of
// the center. It is used as an index-friendly SQL prefilter before the exact distance check.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

func Box(lat, lng, radiusKm float64) BoundingBox {
	latDelta := degrees(radiusKm / EarthRadiusKm)

	box := BoundingBox{
		MinLat: math.Max(lat-latDelta, -90),
		MaxLat: math.Min(lat+latDelta, 90),
		MinLng: -180,
		MaxLng: 180,
	}

	// near the poles every longitude is in range
	if box.MinLat > -90 && box.MaxLat < 90 {
		lngDelta := degrees(math.Asin(math.Min(math.Sin(radiusKm/EarthRadiusKm)/math.Cos(radians(lat)), 1)))
		if lng-lngDelta >= -180 && lng+lngDelta <= 180 {
			box.MinLng = lng - lngDelta
			box.MaxLng = lng + lngDelta
		}
	}

	return box
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
