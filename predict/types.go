package predict

import "github.com/theoremus-urban-solutions/vehicle-prediction/geo"

// Speed estimation methods.
const (
	SpeedMethodAPI       = "api_speed"
	SpeedMethodNearby    = "nearby_average"
	SpeedMethodHeuristic = "location_heuristic"
	SpeedMethodStatic    = "static_fallback"
	SpeedMethodAtStation = "stopped_at_station"
)

// Position prediction methods.
const (
	PositionMethodRouteShape = "route_shape"
	PositionMethodFallback   = "fallback"
)

// Confidence labels attached to derived values.
const (
	ConfidenceHigh    = "high"
	ConfidenceMedium  = "medium"
	ConfidenceLow     = "low"
	ConfidenceVeryLow = "very_low"
)

// Direction statuses.
const (
	DirectionArriving  = "arriving"
	DirectionDeparting = "departing"
	DirectionUnknown   = "unknown"
)

// Vehicle is one reported position+time sample from the upstream feed.
// The engine never mutates a fix, only derives enhanced copies.
type Vehicle struct {
	ID                   string         `json:"id"`
	RouteID              string         `json:"routeId"`
	TripID               string         `json:"tripId,omitempty"`
	Label                string         `json:"label,omitempty"`
	Position             geo.Coordinate `json:"position"`
	Timestamp            int64          `json:"timestamp"` // epoch seconds of the GPS sample
	SpeedKMH             *float64       `json:"speed,omitempty"`
	Bearing              *float64       `json:"bearing,omitempty"`
	WheelchairAccessible bool           `json:"isWheelchairAccessible"`
	BikeAccessible       bool           `json:"isBikeAccessible"`
}

// SpeedEstimate is the outcome of the speed cascade.
type SpeedEstimate struct {
	SpeedKMH    float64 `json:"speedKMH"`
	Method      string  `json:"method"`
	Confidence  string  `json:"confidence"`
	SampleCount int     `json:"sampleCount,omitempty"` // nearby_average only
}

// PositionPrediction is the outcome of the movement simulation. Method and
// Success let callers tell a real route-shape prediction from a fallback to
// the raw reported coordinates.
type PositionPrediction struct {
	Position    geo.Coordinate `json:"position"`
	DistanceM   float64        `json:"distanceM"`
	StopsPassed int            `json:"stopsPassed"`
	DwellSec    float64        `json:"dwellSec"`
	Method      string         `json:"method"`
	Success     bool           `json:"success"`
	AgeSec      int64          `json:"ageSec"`
}

// StopAnnotation describes one stop of a trip within a direction analysis.
type StopAnnotation struct {
	StopID           string `json:"stopId"`
	Name             string `json:"name,omitempty"`
	Sequence         int    `json:"sequence"`
	IsCurrent        bool   `json:"isCurrent"`
	IsDestination    bool   `json:"isDestination"`
	EstimatedArrival string `json:"estimatedArrival,omitempty"`
}

// DirectionResult classifies a vehicle relative to a target station.
type DirectionResult struct {
	Direction        string           `json:"direction"`
	EstimatedMinutes int              `json:"estimatedMinutes"`
	Confidence       string           `json:"confidence"`
	StopSequence     []StopAnnotation `json:"stopSequence,omitempty"`
}

// EnhancedVehicle is a fresh record merging a raw fix with the engine's
// derived fields. Position and SpeedKMH on the embedded Vehicle hold the
// predicted values; the API-reported originals are preserved alongside for
// debugging and comparison.
type EnhancedVehicle struct {
	Vehicle

	OriginalLatitude  float64  `json:"originalLatitude"`
	OriginalLongitude float64  `json:"originalLongitude"`
	OriginalSpeedKMH  *float64 `json:"originalSpeed,omitempty"`

	PositionMethod  string  `json:"positionMethod"`
	PositionSuccess bool    `json:"positionSuccess"`
	DistanceM       float64 `json:"distanceM"`
	StopsPassed     int     `json:"stopsPassed"`
	DwellSec        float64 `json:"dwellSec"`
	AgeSec          int64   `json:"ageSec"`

	SpeedMethod      string `json:"speedMethod"`
	SpeedConfidence  string `json:"speedConfidence"`
	SpeedSampleCount int    `json:"speedSampleCount,omitempty"`

	AtStation   bool   `json:"atStation"`
	AtStationID string `json:"atStationId,omitempty"`
}
