package predict

import (
	"errors"

	"github.com/theoremus-urban-solutions/vehicle-prediction/geo"
	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfs"
)

// ErrNoStops is returned when a density center is requested for an empty
// stop set.
var ErrNoStops = errors.New("predict: no stops to compute density center")

// DensityCenter returns the centroid of all known stops, used as a proxy
// for the urban core in the speed heuristic. Stops with invalid coordinates
// are skipped. An empty (or all-invalid) input is an error: (0,0) is a
// valid ocean coordinate and would corrupt downstream distance math.
func DensityCenter(stops []gtfs.Stop) (geo.Coordinate, error) {
	var sumLat, sumLon float64
	n := 0
	for _, s := range stops {
		if !s.Position.Valid() {
			continue
		}
		sumLat += s.Position.Latitude
		sumLon += s.Position.Longitude
		n++
	}
	if n == 0 {
		return geo.Coordinate{}, ErrNoStops
	}
	return geo.Coordinate{
		Latitude:  sumLat / float64(n),
		Longitude: sumLon / float64(n),
	}, nil
}

// WithinRadius returns the stops within radiusM meters of center.
func WithinRadius(stops []gtfs.Stop, center geo.Coordinate, radiusM float64) []gtfs.Stop {
	if !center.Valid() {
		return nil
	}
	var out []gtfs.Stop
	for _, s := range stops {
		if !s.Position.Valid() {
			continue
		}
		if geo.DistanceMeters(s.Position, center) <= radiusM {
			out = append(out, s)
		}
	}
	return out
}
