package predict

import "github.com/theoremus-urban-solutions/vehicle-prediction/geo"

// speedStrategy attempts one estimation approach. A nil result means the
// strategy does not apply and the cascade falls through to the next one.
type speedStrategy func(v Vehicle, others []Vehicle, center geo.Coordinate, centerOK bool) *SpeedEstimate

// PredictSpeed estimates the vehicle's current speed through the ordered
// strategy cascade; the first strategy that produces an estimate wins.
//
// atStopID marks the vehicle as standing at a known stop (usually derived
// from the predicted position); when non-empty it overrides the whole
// cascade with speed 0 and method stopped_at_station.
func (e *Engine) PredictSpeed(v Vehicle, others []Vehicle, center geo.Coordinate, centerOK bool, atStopID string) SpeedEstimate {
	if atStopID != "" {
		return SpeedEstimate{SpeedKMH: 0, Method: SpeedMethodAtStation, Confidence: ConfidenceHigh}
	}
	strategies := []speedStrategy{
		e.apiSpeed,
		e.nearbyAverage,
		e.locationHeuristic,
	}
	for _, strat := range strategies {
		if est := strat(v, others, center, centerOK); est != nil {
			return *est
		}
	}
	return SpeedEstimate{
		SpeedKMH:   e.cfg.FallbackSpeedKMH,
		Method:     SpeedMethodStatic,
		Confidence: ConfidenceVeryLow,
	}
}

// apiSpeed uses the fix's own reported speed verbatim when positive.
func (e *Engine) apiSpeed(v Vehicle, _ []Vehicle, _ geo.Coordinate, _ bool) *SpeedEstimate {
	if v.SpeedKMH == nil || *v.SpeedKMH <= 0 {
		return nil
	}
	return &SpeedEstimate{SpeedKMH: *v.SpeedKMH, Method: SpeedMethodAPI, Confidence: ConfidenceHigh}
}

// nearbyAverage averages the reported speeds of other vehicles within the
// configured radius. Candidates without a positive reported speed or with
// invalid coordinates are skipped, never allowed to propagate NaN.
func (e *Engine) nearbyAverage(v Vehicle, others []Vehicle, _ geo.Coordinate, _ bool) *SpeedEstimate {
	if !v.Position.Valid() {
		return nil
	}
	sum := 0.0
	n := 0
	for _, o := range others {
		if o.ID == v.ID {
			continue
		}
		if o.SpeedKMH == nil || *o.SpeedKMH <= 0 {
			continue
		}
		if !o.Position.Valid() {
			continue
		}
		if geo.DistanceMeters(v.Position, o.Position) > e.cfg.NearbyRadiusM {
			continue
		}
		sum += *o.SpeedKMH
		n++
	}
	if n == 0 {
		return nil
	}
	conf := ConfidenceLow
	switch {
	case n >= e.cfg.NearbyHighSamples:
		conf = ConfidenceHigh
	case n >= e.cfg.NearbyMediumSamples:
		conf = ConfidenceMedium
	}
	return &SpeedEstimate{
		SpeedKMH:    sum / float64(n),
		Method:      SpeedMethodNearby,
		Confidence:  conf,
		SampleCount: n,
	}
}

// locationHeuristic interpolates speed from the vehicle's distance to the
// stop-density center: the dense core means more stops and slower travel,
// so speed climbs linearly toward the edges of the network.
func (e *Engine) locationHeuristic(v Vehicle, _ []Vehicle, center geo.Coordinate, centerOK bool) *SpeedEstimate {
	if !centerOK || e.cfg.HeuristicMaxDistanceM <= 0 {
		return nil
	}
	if !v.Position.Valid() || !center.Valid() {
		return nil
	}
	frac := geo.DistanceMeters(v.Position, center) / e.cfg.HeuristicMaxDistanceM
	if frac > 1 {
		frac = 1
	}
	conf := ConfidenceLow
	switch {
	case frac < 0.3:
		conf = ConfidenceHigh
	case frac < 0.7:
		conf = ConfidenceMedium
	}
	return &SpeedEstimate{
		SpeedKMH:   e.cfg.HeuristicMinSpeedKMH + frac*(e.cfg.HeuristicMaxSpeedKMH-e.cfg.HeuristicMinSpeedKMH),
		Method:     SpeedMethodHeuristic,
		Confidence: conf,
	}
}
