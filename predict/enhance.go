package predict

import (
	"github.com/theoremus-urban-solutions/vehicle-prediction/geo"
	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfs"
)

// Enhance runs the full prediction pipeline over one snapshot of vehicles.
// shapes and stopTimes are keyed by trip id; stops is the global stop list.
// The density center is computed once for the whole batch.
//
// Per-vehicle work reads only the batch's raw reported positions and
// speeds, never another vehicle's predicted output, so results are
// independent of iteration order and the call is idempotent for a fixed
// now.
func (e *Engine) Enhance(vehicles []Vehicle, shapes map[string]geo.Shape, stopTimes map[string][]gtfs.StopTime, stops []gtfs.Stop, now int64) []EnhancedVehicle {
	center, err := DensityCenter(stops)
	centerOK := err == nil

	out := make([]EnhancedVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, e.enhanceOne(v, vehicles, shapes[v.TripID], stopTimes[v.TripID], stops, center, centerOK, now))
	}
	return out
}

func (e *Engine) enhanceOne(v Vehicle, batch []Vehicle, shape geo.Shape, stopTimes []gtfs.StopTime, stops []gtfs.Stop, center geo.Coordinate, centerOK bool, now int64) EnhancedVehicle {
	// Stage one: position with the configured average speed. Stage two: the
	// speed cascade, with the predicted position feeding the at-station
	// override. The position is not re-run with the refined speed.
	pos := e.PredictPosition(v, shape, stopTimes, stops, 0, now)
	atStopID := e.stopNear(pos.Position, stops)
	speed := e.PredictSpeed(v, batch, center, centerOK, atStopID)

	enh := EnhancedVehicle{
		Vehicle: v,

		OriginalLatitude:  v.Position.Latitude,
		OriginalLongitude: v.Position.Longitude,
		OriginalSpeedKMH:  v.SpeedKMH,

		PositionMethod:  pos.Method,
		PositionSuccess: pos.Success,
		DistanceM:       pos.DistanceM,
		StopsPassed:     pos.StopsPassed,
		DwellSec:        pos.DwellSec,
		AgeSec:          pos.AgeSec,

		SpeedMethod:      speed.Method,
		SpeedConfidence:  speed.Confidence,
		SpeedSampleCount: speed.SampleCount,

		AtStation:   atStopID != "",
		AtStationID: atStopID,
	}
	enh.Position = pos.Position
	predicted := speed.SpeedKMH
	enh.SpeedKMH = &predicted
	return enh
}

// stopNear returns the id of the first stop within the at-station radius of
// p, or "" when none is.
func (e *Engine) stopNear(p geo.Coordinate, stops []gtfs.Stop) string {
	if !p.Valid() {
		return ""
	}
	for _, s := range stops {
		if !s.Position.Valid() {
			continue
		}
		if geo.DistanceMeters(p, s.Position) <= e.cfg.AtStationRadiusM {
			return s.ID
		}
	}
	return ""
}
