package predict

// Config carries every tunable the engine uses. It is read-only after
// construction; tests vary thresholds by building their own value instead
// of touching shared state.
type Config struct {
	// Speed cascade.
	NearbyRadiusM       float64 // radius for the nearby-vehicle average
	NearbyHighSamples   int     // samples needed for high confidence
	NearbyMediumSamples int     // samples needed for medium confidence

	// Location heuristic: speed rises linearly from HeuristicMinSpeedKMH at
	// the density center to HeuristicMaxSpeedKMH at or beyond
	// HeuristicMaxDistanceM. The slope is a tunable assumption, not
	// validated transit physics.
	HeuristicMaxDistanceM float64
	HeuristicMinSpeedKMH  float64
	HeuristicMaxSpeedKMH  float64

	FallbackSpeedKMH float64 // static last-resort speed
	AverageSpeedKMH  float64 // movement-simulation default speed

	// Movement simulation.
	AtStationRadiusM   float64 // proximity snap for the at-station override
	OffRouteThresholdM float64 // projection distance beyond which a fix is off-script
	StopDwellSec       float64 // time spent stationary at each stop passed

	// Direction analysis.
	MinutesPerStop           float64 // schedule-free travel rate between stops
	NearTermPastMin          float64 // minutes past arrival still treated as "at the stop"
	HighConfidenceStopWindow int     // stops from target within which confidence is high
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		NearbyRadiusM:       300,
		NearbyHighSamples:   5,
		NearbyMediumSamples: 2,

		HeuristicMaxDistanceM: 5000,
		HeuristicMinSpeedKMH:  15,
		HeuristicMaxSpeedKMH:  45,

		FallbackSpeedKMH: 20,
		AverageSpeedKMH:  35,

		AtStationRadiusM:   50,
		OffRouteThresholdM: 200,
		StopDwellSec:       30,

		MinutesPerStop:           2,
		NearTermPastMin:          10,
		HighConfidenceStopWindow: 3,
	}
}

// Engine is a stateless prediction engine. All methods are pure functions
// over their arguments plus the immutable config.
type Engine struct {
	cfg Config
}

// New creates an engine with the given tuning.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config {
	return e.cfg
}
