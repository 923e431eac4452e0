/*
Package predict reconstructs plausible current positions and speeds for
transit vehicles from stale GPS fixes.

A vehicle fix is only as fresh as the upstream polling cycle; by the time a
client renders it, the vehicle has usually moved on. Given a fix, its age,
the trip's route shape and the trip's stop sequence, the engine simulates
forward movement along the polyline - consuming travel distance to reach
each upcoming stop and charging a dwell time for every stop encountered -
and estimates the vehicle's current speed through a cascade of fallback
strategies.

# Usage

	eng := predict.New(predict.DefaultConfig())

	enhanced := eng.Enhance(vehicles, shapesByTrip, stopTimesByTrip, stops, time.Now().Unix())

	for _, v := range enhanced {
	    fmt.Println(v.ID, v.Position, *v.SpeedKMH, v.SpeedMethod)
	}

Position and speed can also be predicted independently:

	pos := eng.PredictPosition(v, shape, stopTimes, stops, 0, now)
	est := eng.PredictSpeed(v, batch, center, true, "")

# Purity

Every entry point is a pure, synchronous function over its arguments: no
I/O, no shared mutable state, no randomness. Calling any of them twice with
identical inputs (including the same now) produces identical outputs, and a
batch enhancement is embarrassingly parallel - one vehicle's result never
depends on another vehicle's predicted output, only on the batch's raw
reported positions and speeds.

# Error handling

Engine methods never panic and never return errors for bad vehicle data.
Invalid coordinates, missing trip context, off-route geometry and parse
failures all degrade to documented fallbacks; callers distinguish a real
prediction from a fallback through the Method and Success metadata fields.

# Speed cascade

The speed predictor tries four ordered strategies, first match wins:

 1. api_speed - the fix's own reported speed, when positive.
 2. nearby_average - mean reported speed of other vehicles within a radius.
 3. location_heuristic - interpolated from distance to the stop-density
    center (near the dense core means more stops and slower travel).
 4. static_fallback - a fixed configured speed.

A vehicle whose predicted position lies within the at-station radius of a
known stop overrides the cascade entirely: speed 0, method
stopped_at_station.

# Refinement passes

Speed feeds the position simulation's travel budget, and position feeds the
speed predictor's at-station override. The engine resolves this cycle with
a fixed two-stage pass, not a convergence loop: position is predicted once
with the configured average speed, then the speed cascade runs with that
predicted position. The position is not re-run with the refined speed.
*/
package predict
