package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/vehicle-prediction/predict"
)

// Default returns the configuration used when no file or environment
// overrides are present. Prediction tunables mirror predict.DefaultConfig.
func Default() AppConfig {
	d := predict.DefaultConfig()
	return AppConfig{
		Server: ServerConfig{Port: 16190},
		GTFSRT: GTFSRTConfig{ReadIntervalMS: 30000, TimeoutMS: 10000},
		Prediction: PredictionConfig{
			NearbyRadiusM:       d.NearbyRadiusM,
			NearbyHighSamples:   d.NearbyHighSamples,
			NearbyMediumSamples: d.NearbyMediumSamples,

			HeuristicMaxDistanceM: d.HeuristicMaxDistanceM,
			HeuristicMinSpeedKMH:  d.HeuristicMinSpeedKMH,
			HeuristicMaxSpeedKMH:  d.HeuristicMaxSpeedKMH,

			FallbackSpeedKMH: d.FallbackSpeedKMH,
			AverageSpeedKMH:  d.AverageSpeedKMH,

			AtStationRadiusM:   d.AtStationRadiusM,
			OffRouteThresholdM: d.OffRouteThresholdM,
			StopDwellSec:       d.StopDwellSec,

			MinutesPerStop:           d.MinutesPerStop,
			NearTermPastMin:          d.NearTermPastMin,
			HighConfidenceStopWindow: d.HighConfidenceStopWindow,
		},
	}
}

// Load reads configuration from path, layered as defaults, then the YAML
// file, then environment variables. A missing file is not an error - the
// defaults plus environment cover the common container deployment. An
// empty path falls back to $CONFIG_PATH and then config.yml.
func Load(path string) (AppConfig, error) {
	// Load .env into the environment; ignore if missing.
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yml"
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// fall through to env + defaults
	default:
		return cfg, err
	}

	if v := os.Getenv("GTFS_STATIC_URL"); v != "" {
		cfg.GTFS.StaticURL = v
	}
	if v := os.Getenv("GTFS_STATIC_PATH"); v != "" {
		cfg.GTFS.StaticPath = v
	}
	if v := os.Getenv("VEHICLE_POSITIONS_URL"); v != "" {
		cfg.GTFSRT.VehiclePositionsURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Server.Port = port
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
