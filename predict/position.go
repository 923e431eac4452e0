package predict

import (
	"sort"

	"github.com/theoremus-urban-solutions/vehicle-prediction/geo"
	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfs"
)

// PredictPosition reconstructs a plausible current position for v by
// simulating forward movement along shape for the time elapsed since the
// fix was recorded, charging a dwell time for every stop passed.
//
// speedKMH is the simulation travel speed; pass 0 (or negative) to use the
// configured average. now is epoch seconds.
//
// Fallback cases return the raw reported coordinates with method
// "fallback": a zero age means the fix is current truth (Success true);
// missing trip context, invalid coordinates or an off-route projection mean
// the simulation could not run (Success false).
func (e *Engine) PredictPosition(v Vehicle, shape geo.Shape, stopTimes []gtfs.StopTime, stops []gtfs.Stop, speedKMH float64, now int64) PositionPrediction {
	age := now - v.Timestamp
	if v.Timestamp <= 0 || age < 0 {
		age = 0
	}
	fallback := func(success bool) PositionPrediction {
		return PositionPrediction{
			Position: v.Position,
			Method:   PositionMethodFallback,
			Success:  success,
			AgeSec:   age,
		}
	}
	if age == 0 {
		return fallback(true)
	}
	if v.TripID == "" || len(shape) == 0 || len(stopTimes) == 0 || len(stops) == 0 {
		return fallback(false)
	}
	if !v.Position.Valid() {
		return fallback(false)
	}

	proj, err := geo.ProjectToShape(v.Position, shape)
	if err != nil {
		return fallback(false)
	}
	if proj.DistanceM > e.cfg.OffRouteThresholdM {
		// Vehicle is off-script; do not extrapolate.
		return fallback(false)
	}

	if speedKMH <= 0 {
		speedKMH = e.cfg.AverageSpeedKMH
	}
	speedMps := speedKMH / 3.6
	remainingM := speedMps * float64(age)

	curM := proj.AlongM
	stopsPassed := 0
	dwellSec := 0.0

	for _, stopM := range e.stopsAhead(shape, stopTimes, stops, proj) {
		distTo := stopM - curM
		if distTo < 0 {
			continue
		}
		if remainingM < distTo {
			// Not enough budget to reach the next stop; halt partway.
			curM += remainingM
			remainingM = 0
			break
		}
		remainingM -= distTo
		curM = stopM
		stopsPassed++
		dwellSec += e.cfg.StopDwellSec
		dwellCostM := e.cfg.StopDwellSec * speedMps
		if remainingM <= dwellCostM {
			// Still dwelling at this stop.
			remainingM = 0
			break
		}
		remainingM -= dwellCostM
	}

	// Advance whatever budget is left along the remaining segments,
	// clamping at the shape's terminus.
	curM += remainingM
	if total := shape.LengthM(); curM > total {
		curM = total
	}
	pos, err := shape.At(curM)
	if err != nil {
		return fallback(false)
	}
	return PositionPrediction{
		Position:    pos,
		DistanceM:   curM - proj.AlongM,
		StopsPassed: stopsPassed,
		DwellSec:    dwellSec,
		Method:      PositionMethodRouteShape,
		Success:     true,
		AgeSec:      age,
	}
}

// stopsAhead returns the along-shape distances of the trip's stops that lie
// ahead of the vehicle's projection, in travel order. Ahead means a later
// segment index, or the same segment with a greater position fraction.
func (e *Engine) stopsAhead(shape geo.Shape, stopTimes []gtfs.StopTime, stops []gtfs.Stop, from geo.Projection) []float64 {
	byID := make(map[string]gtfs.Stop, len(stops))
	for _, s := range stops {
		byID[s.ID] = s
	}
	var ahead []float64
	for _, st := range sortedBySequence(stopTimes) {
		stop, ok := byID[st.StopID]
		if !ok || !stop.Position.Valid() {
			continue
		}
		p, err := geo.ProjectToShape(stop.Position, shape)
		if err != nil {
			continue
		}
		if p.SegmentIndex < from.SegmentIndex {
			continue
		}
		if p.SegmentIndex == from.SegmentIndex && p.Fraction <= from.Fraction {
			continue
		}
		ahead = append(ahead, p.AlongM)
	}
	sort.Float64s(ahead)
	return ahead
}

// sortedBySequence returns a copy of stopTimes ordered by sequence number,
// dropping entries with negative sequences.
func sortedBySequence(stopTimes []gtfs.StopTime) []gtfs.StopTime {
	out := make([]gtfs.StopTime, 0, len(stopTimes))
	for _, st := range stopTimes {
		if st.Sequence < 0 {
			continue
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}
