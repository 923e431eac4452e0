package gtfs

import "github.com/theoremus-urban-solutions/vehicle-prediction/geo"

// Index stores GTFS static data in memory for fast lookups. It is
// read-only after construction.
type Index struct {
	stops         []Stop
	stopIdx       map[string]int        // stop_id -> index into stops
	tripRoute     map[string]string     // trip_id -> route_id
	tripShapeID   map[string]string     // trip_id -> shape_id
	tripStopTimes map[string][]StopTime // trip_id -> stop times sorted by sequence
	shapes        map[string]geo.Shape  // shape_id -> shape
}

func newIndex() *Index {
	return &Index{
		stopIdx:       map[string]int{},
		tripRoute:     map[string]string{},
		tripShapeID:   map[string]string{},
		tripStopTimes: map[string][]StopTime{},
		shapes:        map[string]geo.Shape{},
	}
}

// Stops returns the global stop list, with route associations resolved.
func (g *Index) Stops() []Stop {
	return g.stops
}

// StopByID looks a stop up by id.
func (g *Index) StopByID(stopID string) (Stop, bool) {
	i, ok := g.stopIdx[stopID]
	if !ok {
		return Stop{}, false
	}
	return g.stops[i], true
}

// RouteIDForTrip returns the route a trip belongs to, or "".
func (g *Index) RouteIDForTrip(tripID string) string {
	return g.tripRoute[tripID]
}

// ShapeForTrip returns the route shape a trip follows.
func (g *Index) ShapeForTrip(tripID string) (geo.Shape, bool) {
	shapeID, ok := g.tripShapeID[tripID]
	if !ok {
		return nil, false
	}
	shape, ok := g.shapes[shapeID]
	return shape, ok
}

// StopTimesForTrip returns the trip's stop times sorted by sequence.
func (g *Index) StopTimesForTrip(tripID string) []StopTime {
	return g.tripStopTimes[tripID]
}

// TripShapes returns a trip_id -> shape map covering every trip with a
// shape, in the form the enhancement orchestrator consumes.
func (g *Index) TripShapes() map[string]geo.Shape {
	out := make(map[string]geo.Shape, len(g.tripShapeID))
	for tripID, shapeID := range g.tripShapeID {
		if shape, ok := g.shapes[shapeID]; ok {
			out[tripID] = shape
		}
	}
	return out
}

// TripStopTimes returns the trip_id -> stop-times map the enhancement
// orchestrator consumes.
func (g *Index) TripStopTimes() map[string][]StopTime {
	return g.tripStopTimes
}
