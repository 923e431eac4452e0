package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	lib "github.com/theoremus-urban-solutions/vehicle-prediction"
	"github.com/theoremus-urban-solutions/vehicle-prediction/config"
	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfs"
	"github.com/theoremus-urban-solutions/vehicle-prediction/gtfsrt"
	"github.com/theoremus-urban-solutions/vehicle-prediction/predict"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	configPath := flag.String("config", "", "config file path (default config.yml)")
	gtfsStatic := flag.String("gtfsStatic", "", "GTFS static zip URL or path (overrides config)")
	vehiclePositions := flag.String("vehiclePositions", "", "GTFS-RT VehiclePositions URL (overrides config)")
	flag.Parse()

	lib.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *gtfsStatic != "" {
		if _, err := os.Stat(*gtfsStatic); err == nil {
			cfg.GTFS.StaticPath = *gtfsStatic
			cfg.GTFS.StaticURL = ""
		} else {
			cfg.GTFS.StaticURL = *gtfsStatic
			cfg.GTFS.StaticPath = ""
		}
	}
	if *vehiclePositions != "" {
		cfg.GTFSRT.VehiclePositionsURL = *vehiclePositions
	}

	index, err := loadIndex(cfg.GTFS)
	if err != nil {
		log.Fatalf("gtfs static: %v", err)
	}
	log.Printf("gtfs static loaded: %d stops", len(index.Stops()))

	feed := gtfsrt.NewFeed(cfg.GTFSRT.VehiclePositionsURL,
		time.Duration(cfg.GTFSRT.TimeoutMS)*time.Millisecond)

	switch *mode {
	case "oneshot":
		if err := feed.Refresh(); err != nil {
			log.Fatalf("feed refresh: %v", err)
		}
		vehicles, _ := feed.Vehicles()
		engine := predict.New(cfg.Prediction.EngineConfig())
		enhanced := engine.Enhance(vehicles, index.TripShapes(), index.TripStopTimes(), index.Stops(), time.Now().Unix())
		out, err := json.MarshalIndent(enhanced, "", "  ")
		if err != nil {
			log.Fatalf("encode: %v", err)
		}
		fmt.Println(string(out))
	case "serve":
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		srv := lib.NewServer(cfg, index, feed)
		if err := srv.Run(ctx); err != nil {
			log.Fatalf("server: %v", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func loadIndex(cfg config.GTFSConfig) (*gtfs.Index, error) {
	switch {
	case cfg.StaticPath != "":
		return gtfs.NewIndexFromFile(cfg.StaticPath)
	case cfg.StaticURL != "":
		return gtfs.NewIndexFromURL(cfg.StaticURL)
	default:
		return nil, fmt.Errorf("no GTFS static source configured")
	}
}
