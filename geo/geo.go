package geo

import "math"

const earthRadiusM = 6371000.0

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is inside WGS84 range
// (latitude -90..90, longitude -180..180). NaN is invalid.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// DistanceMeters returns the haversine great-circle distance between a and b.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180
	la1 := a.Latitude * math.Pi / 180
	la2 := b.Latitude * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

// ProjectToSegment snaps p onto the segment from a to b and returns the
// closest point, the fractional position along the segment and the distance
// from p to that point in meters. The fraction is clamped to [0,1] so the
// closest point never leaves the segment.
//
// The projection itself works in flat lon/lat space, which is accurate
// enough for points in the same transit area; only the final distance uses
// the great-circle formula.
func ProjectToSegment(p, a, b Coordinate) (Coordinate, float64, float64) {
	vx := b.Longitude - a.Longitude
	vy := b.Latitude - a.Latitude
	wx := p.Longitude - a.Longitude
	wy := p.Latitude - a.Latitude
	denom := vx*vx + vy*vy
	t := 0.0
	if denom > 0 {
		t = (wx*vx + wy*vy) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	closest := Coordinate{
		Latitude:  a.Latitude + t*vy,
		Longitude: a.Longitude + t*vx,
	}
	return closest, t, DistanceMeters(p, closest)
}
