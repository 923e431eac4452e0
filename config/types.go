package config

import "github.com/theoremus-urban-solutions/vehicle-prediction/predict"

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GTFSConfig contains GTFS static feed configuration. Exactly one of
// StaticURL and StaticPath is normally set; StaticPath wins when both are.
type GTFSConfig struct {
	StaticURL  string `yaml:"staticURL" validate:"omitempty,url"`
	StaticPath string `yaml:"staticPath" validate:"omitempty"`
}

// GTFSRTConfig contains the realtime vehicle feed configuration.
type GTFSRTConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	ReadIntervalMS      int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// PredictionConfig mirrors predict.Config in YAML form.
type PredictionConfig struct {
	NearbyRadiusM       float64 `yaml:"nearbyRadiusM" validate:"gte=0"`
	NearbyHighSamples   int     `yaml:"nearbyHighSamples" validate:"gte=0"`
	NearbyMediumSamples int     `yaml:"nearbyMediumSamples" validate:"gte=0"`

	HeuristicMaxDistanceM float64 `yaml:"heuristicMaxDistanceM" validate:"gte=0"`
	HeuristicMinSpeedKMH  float64 `yaml:"heuristicMinSpeedKMH" validate:"gte=0"`
	HeuristicMaxSpeedKMH  float64 `yaml:"heuristicMaxSpeedKMH" validate:"gte=0"`

	FallbackSpeedKMH float64 `yaml:"fallbackSpeedKMH" validate:"gte=0"`
	AverageSpeedKMH  float64 `yaml:"averageSpeedKMH" validate:"gte=0"`

	AtStationRadiusM   float64 `yaml:"atStationRadiusM" validate:"gte=0"`
	OffRouteThresholdM float64 `yaml:"offRouteThresholdM" validate:"gte=0"`
	StopDwellSec       float64 `yaml:"stopDwellSec" validate:"gte=0"`

	MinutesPerStop           float64 `yaml:"minutesPerStop" validate:"gte=0"`
	NearTermPastMin          float64 `yaml:"nearTermPastMin" validate:"gte=0"`
	HighConfidenceStopWindow int     `yaml:"highConfidenceStopWindow" validate:"gte=0"`
}

// EngineConfig converts the YAML form into the engine's config.
func (p PredictionConfig) EngineConfig() predict.Config {
	return predict.Config{
		NearbyRadiusM:       p.NearbyRadiusM,
		NearbyHighSamples:   p.NearbyHighSamples,
		NearbyMediumSamples: p.NearbyMediumSamples,

		HeuristicMaxDistanceM: p.HeuristicMaxDistanceM,
		HeuristicMinSpeedKMH:  p.HeuristicMinSpeedKMH,
		HeuristicMaxSpeedKMH:  p.HeuristicMaxSpeedKMH,

		FallbackSpeedKMH: p.FallbackSpeedKMH,
		AverageSpeedKMH:  p.AverageSpeedKMH,

		AtStationRadiusM:   p.AtStationRadiusM,
		OffRouteThresholdM: p.OffRouteThresholdM,
		StopDwellSec:       p.StopDwellSec,

		MinutesPerStop:           p.MinutesPerStop,
		NearTermPastMin:          p.NearTermPastMin,
		HighConfidenceStopWindow: p.HighConfidenceStopWindow,
	}
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	GTFS       GTFSConfig       `yaml:"gtfs"`
	GTFSRT     GTFSRTConfig     `yaml:"gtfsrt"`
	Prediction PredictionConfig `yaml:"prediction"`
}
